package ledger

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rickgao/auctionhouse/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedger_GetOrCreate_TrimsName(t *testing.T) {
	l := New(model.StartingBalance)

	a := l.GetOrCreate("  alice ")
	b := l.GetOrCreate("alice")
	if a != b {
		t.Error("expected trimmed names to share one entry")
	}
	if a.Name() != "alice" {
		t.Errorf("Name() = %q, want %q", a.Name(), "alice")
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestLedger_GetOrCreate_CaseSensitive(t *testing.T) {
	l := New(model.StartingBalance)

	l.GetOrCreate("Alice")
	l.GetOrCreate("alice")
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestLedger_Snapshot_StartingBalance(t *testing.T) {
	l := New(model.StartingBalance)

	got := l.Snapshot("bob")
	if got.Name != "bob" {
		t.Errorf("Name = %q, want %q", got.Name, "bob")
	}
	if !got.Wallet.Equal(dec("10000.00")) {
		t.Errorf("Wallet = %s, want 10000.00", got.Wallet)
	}
}

func TestLedger_CanAfford(t *testing.T) {
	l := New(dec("100"))

	tests := []struct {
		amount string
		want   bool
	}{
		{"99.99", true},
		{"100", true},
		{"100.01", false},
	}

	for _, tt := range tests {
		if got := l.CanAfford("carol", dec(tt.amount)); got != tt.want {
			t.Errorf("CanAfford(%s) = %v, want %v", tt.amount, got, tt.want)
		}
	}
}

func TestLedger_CreditWin(t *testing.T) {
	l := New(model.StartingBalance)

	if !l.CreditWin("alice", "Vase", dec("150.00")) {
		t.Fatal("CreditWin returned false")
	}

	status := l.Snapshot("alice")
	if !status.Wallet.Equal(dec("9850.00")) {
		t.Errorf("Wallet = %s, want 9850.00", status.Wallet)
	}

	items := l.WonItems("alice")
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].ItemName != "Vase" || !items[0].Cost.Equal(dec("150")) {
		t.Errorf("items[0] = %+v, want {Vase 150}", items[0])
	}
}

func TestLedger_CreditWin_InsufficientFundsIsNoOp(t *testing.T) {
	l := New(dec("500"))

	if !l.CreditWin("dave", "Lamp", dec("400")) {
		t.Fatal("first CreditWin returned false")
	}
	if l.CreditWin("dave", "Rug", dec("400")) {
		t.Fatal("second CreditWin returned true, want false")
	}

	if got := l.Snapshot("dave").Wallet; !got.Equal(dec("100")) {
		t.Errorf("Wallet = %s, want 100", got)
	}
	items := l.WonItems("dave")
	if len(items) != 1 || items[0].ItemName != "Lamp" {
		t.Errorf("items = %+v, want only Lamp", items)
	}
}

func TestLedger_WonItems_UnknownDoesNotCreate(t *testing.T) {
	l := New(model.StartingBalance)

	items := l.WonItems("ghost")
	if items == nil || len(items) != 0 {
		t.Errorf("WonItems = %v, want empty non-nil slice", items)
	}
	if _, ok := l.Lookup("ghost"); ok {
		t.Error("WonItems created an entry for an unknown name")
	}
}

func TestLedger_WonItems_ReturnsCopy(t *testing.T) {
	l := New(model.StartingBalance)
	l.CreditWin("erin", "Clock", dec("10"))

	items := l.WonItems("erin")
	items[0].ItemName = "mutated"

	if got := l.WonItems("erin")[0].ItemName; got != "Clock" {
		t.Errorf("ItemName = %q, want %q", got, "Clock")
	}
}

func TestLedger_ConcurrentCreditWin(t *testing.T) {
	l := New(dec("1000"))

	var wg sync.WaitGroup
	var mu sync.Mutex
	credited := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.CreditWin(" frank", "Coin", dec("100")) {
				mu.Lock()
				credited++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if credited != 10 {
		t.Errorf("credited = %d, want 10", credited)
	}
	if got := l.Snapshot("frank").Wallet; !got.IsZero() {
		t.Errorf("Wallet = %s, want 0", got)
	}
	if got := len(l.WonItems("frank")); got != 10 {
		t.Errorf("len(WonItems) = %d, want 10", got)
	}
}
