package httpapi

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rickgao/auctionhouse/internal/model"
	"github.com/rickgao/auctionhouse/internal/registry"
	"github.com/rickgao/auctionhouse/internal/wire"
)

const indexMissing = "404 Not Found: index.html missing."

// maxBodyBytes caps form and JSON request bodies.
const maxBodyBytes = 64 << 10

// handleIndex serves the bidder page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.cfg.StaticFile == "" {
		writeText(w, http.StatusNotFound, indexMissing)
		return
	}
	if _, err := os.Stat(s.cfg.StaticFile); err != nil {
		writeText(w, http.StatusNotFound, indexMissing)
		return
	}
	http.ServeFile(w, r, s.cfg.StaticFile)
}

// handleActiveAuctions lists auctions still accepting bids.
func (s *Server) handleActiveAuctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wire.FromAuctions(s.reg.ActiveAuctions()))
}

// handleAllAuctions lists every auction for the admin view.
func (s *Server) handleAllAuctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wire.FromAuctions(s.reg.AllAuctions()))
}

// handleBid places a form-encoded bid and answers in plain text.
func (s *Server) handleBid(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, wire.BidInvalidRequest)
		return
	}

	auctionID, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("auctionId")))
	if err != nil {
		writeText(w, http.StatusBadRequest, wire.BidInvalidRequest)
		return
	}
	bidder := strings.TrimSpace(r.PostFormValue("bidderName"))
	if bidder == "" {
		writeText(w, http.StatusBadRequest, wire.BidInvalidRequest)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(r.PostFormValue("bidAmount")))
	if err != nil {
		writeText(w, http.StatusBadRequest, wire.BidInvalidRequest)
		return
	}

	err = s.reg.PlaceBid(auctionID, bidder, amount)
	outcome := model.OutcomeOf(err)
	if outcome == model.OutcomeUnknown {
		s.logger.Error("unexpected bid error", "auction_id", auctionID, "bidder", bidder, "error", err)
		writeText(w, http.StatusInternalServerError, wire.BidInvalidRequest)
		return
	}
	writeText(w, http.StatusOK, wire.BidText(outcome, s.reg.BidLimit()))
}

// handleUserStatus reports the named participant's wallet.
func (s *Server) handleUserStatus(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("bidderName"))
	if name == "" {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, wire.FromBidderStatus(s.reg.BidderStatus(name)))
}

// handleMyWins lists the named participant's won items.
func (s *Server) handleMyWins(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("bidderName"))
	if name == "" {
		writeJSON(w, http.StatusOK, []wire.WonItem{})
		return
	}
	writeJSON(w, http.StatusOK, wire.FromWonItems(s.reg.WonItems(name)))
}

// handleCreateAuction accepts a JSON or form body.
func (s *Server) handleCreateAuction(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	req, err := decodeCreateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.reg.CreateAuction(req.ItemName, req.DurationSeconds, req.StartPrice.Decimal())
	switch {
	case errors.Is(err, model.ErrInvalidAuctionParameters):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, registry.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		s.logger.Error("create auction failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, wire.CreateAuctionResponse{ID: id})
}

// handleStopAuction requests an early end. Settlement follows on the
// auction's next tick.
func (s *Server) handleStopAuction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid auction id")
		return
	}
	if _, ok := s.reg.GetAuction(id); !ok {
		writeError(w, http.StatusNotFound, model.ErrAuctionNotFound.Error())
		return
	}

	s.reg.StopAuction(id)
	w.WriteHeader(http.StatusAccepted)
}

// decodeCreateRequest reads either a JSON or a form-encoded create body.
func decodeCreateRequest(r *http.Request) (wire.CreateAuctionRequest, error) {
	var req wire.CreateAuctionRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, errors.New("invalid JSON body")
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, errors.New("invalid form body")
	}
	req.ItemName = r.PostFormValue("itemName")

	duration, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("durationSeconds")))
	if err != nil {
		return req, errors.New("durationSeconds must be an integer")
	}
	req.DurationSeconds = duration

	price, err := decimal.NewFromString(strings.TrimSpace(r.PostFormValue("startPrice")))
	if err != nil {
		return req, errors.New("startPrice must be a number")
	}
	req.StartPrice = wire.Money(price)

	return req, nil
}
