package handlers

import (
	"time"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
	"github.com/preston-bernstein/market-data-watch/internal/present"
	"github.com/preston-bernstein/market-data-watch/internal/state"
)

// MarketResponse is the JSON shape served by /market and pushed on /market/stream.
type MarketResponse struct {
	Records   []RecordView `json:"records"`
	Error     bool         `json:"error"`
	Loading   bool         `json:"loading"`
	View      present.View `json:"view"`
	Message   string       `json:"message,omitempty"`
	Version   uint64       `json:"version"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
}

// RecordView is a record annotated with its classification.
type RecordView struct {
	market.Record
	Category market.Category `json:"category"`
	Class    string          `json:"class"`
}

// NewMarketResponse projects a poll state for consumers.
func NewMarketResponse(st state.PollState) MarketResponse {
	records := make([]RecordView, 0, len(st.Records))
	for _, rec := range st.Records {
		cat := rec.Category()
		records = append(records, RecordView{Record: rec, Category: cat, Class: cat.Color()})
	}

	view := present.SelectView(st)
	resp := MarketResponse{
		Records: records,
		Error:   st.Err,
		Loading: st.Loading,
		View:    view,
		Message: view.Message(),
		Version: st.Version,
	}
	if !st.UpdatedAt.IsZero() {
		at := st.UpdatedAt
		resp.UpdatedAt = &at
	}
	return resp
}
