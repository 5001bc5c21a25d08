package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kisankhidmat/khidmat/internal/ledger"
)

// NewBillDownloadHandler serves "GET /bills/{phone}" with a freshly generated bill
// as a text attachment.
func NewBillDownloadHandler(bills *BillGenerator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		phone := r.PathValue("phone")
		if phone == "" {
			phone = strings.TrimPrefix(r.URL.Path, BillDownloadPrefix)
		}

		bill, err := bills.Generate(r.Context(), phone)
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		case errors.Is(err, ledger.ErrInvalidPhone):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			slog.Error("Bill download failed", "phone", phone, "error", err)
			http.Error(w, "bill unavailable", http.StatusServiceUnavailable)
			return
		}

		body := bill.Document.Bytes()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bill.Document.FileName()))
		w.Header().Set("Content-Length", fmt.Sprint(len(body)))
		if _, err := w.Write(body); err != nil {
			slog.Warn("Bill download interrupted", "phone", phone, "error", err)
		}
	})
}
