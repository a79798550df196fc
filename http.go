package atmgo

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewHTTPHandler mounts the ATM facade. Response bodies follow the wire
// contract of the original service: account creation answers with the bare
// id string, balance and operation endpoints with the bare numeric balance,
// deletion with 204 and no body.
func NewHTTPHandler(svc Service, log *zerolog.Logger) http.Handler {
	hndlr := &httpHandler{
		Svc: svc,
		Log: log,
	}
	mux := chi.NewMux()
	mux.NotFound(HTTPNotFound)
	mux.Route("/rest/atm", func(r chi.Router) {
		r.Post("/", hndlr.CreateAccount)
		r.Get("/accounts", hndlr.Accounts)
		r.Get("/{ownerID:[0-9a-fA-F-]{36}}/accounts", hndlr.OwnerAccounts)
		r.Route("/{acctID:[0-9]+}", func(rr chi.Router) {
			rr.Put("/", hndlr.Apply)
			rr.Delete("/", hndlr.DeleteAccount)
			rr.Get("/balance", hndlr.Balance)
			rr.Get("/statement", hndlr.Statement)
		})
	})

	return mux
}

type httpHandler struct {
	Svc Service
	Log *zerolog.Logger
}

func (h *httpHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	buf, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		h.Log.Err(err).Str("method", "createAccount").Msg("error reading HTTP request")
		WriteHTTPError(w, ErrInternalServer)
		return
	}
	var req CreateAccountReq
	if err = json.Unmarshal(buf, &req); err != nil {
		h.Log.Err(err).Str("method", "createAccount").Msg("error unmarshalling JSON")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"request body": "malformed JSON"}})
		return
	}
	id, err := h.Svc.CreateAccount(req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err = w.Write([]byte(id.String())); err != nil {
		h.Log.Err(err).Str("method", "createAccount").Msg("error writing response")
	}
}

func (h *httpHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	acctID, err := acctIDParam(r)
	if err != nil {
		h.Log.Err(err).Str("method", "deleteAccount").Msg("error parsing account ID")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"acctID": "invalid format"}})
		return
	}
	if err = h.Svc.DeleteAccount(acctID); err != nil {
		WriteHTTPError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *httpHandler) Apply(w http.ResponseWriter, r *http.Request) {
	buf, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		h.Log.Err(err).Str("method", "apply").Msg("error reading HTTP request")
		WriteHTTPError(w, ErrInternalServer)
		return
	}
	var req ChargeReq
	if err = json.Unmarshal(buf, &req); err != nil {
		h.Log.Err(err).Str("method", "apply").Msg("error unmarshalling JSON")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"request body": "malformed JSON"}})
		return
	}
	acctID, err := acctIDParam(r)
	if err != nil {
		h.Log.Err(err).Str("method", "apply").Msg("error parsing account ID")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"acctID": "invalid format"}})
		return
	}
	req.AcctID = acctID
	req.PIN = r.URL.Query().Get("pin")
	bal, err := h.Svc.Apply(req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeBalance(w, h.Log, bal.String())
}

func (h *httpHandler) Balance(w http.ResponseWriter, r *http.Request) {
	acctID, err := acctIDParam(r)
	if err != nil {
		h.Log.Err(err).Str("method", "balance").Msg("error parsing account ID")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"acctID": "invalid format"}})
		return
	}
	req := BalanceReq{
		AcctID: acctID,
		PIN:    r.URL.Query().Get("pin"),
	}
	bal, err := h.Svc.Balance(req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	writeBalance(w, h.Log, bal.String())
}

func (h *httpHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	views, err := h.Svc.Accounts()
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(views); err != nil {
		h.Log.Err(err).Str("method", "accounts").Msg("error encoding response")
	}
}

func (h *httpHandler) OwnerAccounts(w http.ResponseWriter, r *http.Request) {
	pid := chi.URLParam(r, "ownerID")
	ownerID, err := uuid.Parse(pid)
	if err != nil {
		h.Log.Err(err).Str("method", "ownerAccounts").Msg("error parsing owner ID")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"ownerID": "invalid format"}})
		return
	}
	views, err := h.Svc.OwnerAccounts(ownerID)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(views); err != nil {
		h.Log.Err(err).Str("method", "ownerAccounts").Msg("error encoding response")
	}
}

func (h *httpHandler) Statement(w http.ResponseWriter, r *http.Request) {
	acctID, err := acctIDParam(r)
	if err != nil {
		h.Log.Err(err).Str("method", "statement").Msg("error parsing account ID")
		WriteHTTPError(w, ErrBadRequest{Fields: map[string]string{"acctID": "invalid format"}})
		return
	}
	req := StatementReq{
		AcctID: acctID,
		PIN:    r.URL.Query().Get("pin"),
	}
	// rendered into a buffer so failures can still produce an error response
	var pdf bytes.Buffer
	if err = h.Svc.Statement(&pdf, req); err != nil {
		WriteHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	if _, err = w.Write(pdf.Bytes()); err != nil {
		h.Log.Err(err).Str("method", "statement").Msg("error writing response")
	}
}

func acctIDParam(r *http.Request) (snowflake.ID, error) {
	return snowflake.ParseString(chi.URLParam(r, "acctID"))
}

// writeBalance emits the balance as a bare JSON number, the response shape
// the original service used for balance reads and applied operations.
func writeBalance(w http.ResponseWriter, log *zerolog.Logger, bal string) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(bal)); err != nil {
		log.Err(err).Msg("error writing balance response")
	}
}

// WriteHTTPError maps each failure kind to its own status code; the original
// service collapsed all of them to 500, which made failures
// indistinguishable to callers.
func WriteHTTPError(w http.ResponseWriter, err error) {
	var ne error
	defer func() {
		if ne != nil {
			log.Error().
				Err(ne).
				Msg("error response encoding failed")
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	errnf := &ErrNotFound{}
	errua := &ErrUnauthorized{}
	erria := &ErrInvalidAmount{}
	errle := &ErrLimitExceeded{}
	errif := &ErrInsufficientFunds{}
	errbr := &ErrBadRequest{}
	switch {
	case errors.As(err, errnf):
		w.WriteHeader(http.StatusNotFound)
		ne = json.NewEncoder(w).Encode(errnf)
	case errors.As(err, errua):
		w.WriteHeader(http.StatusUnauthorized)
		ne = json.NewEncoder(w).Encode(map[string]string{"message": errua.Error()})
	case errors.As(err, erria):
		w.WriteHeader(http.StatusBadRequest)
		ne = json.NewEncoder(w).Encode(erria)
	case errors.As(err, errle):
		w.WriteHeader(http.StatusUnprocessableEntity)
		ne = json.NewEncoder(w).Encode(errle)
	case errors.As(err, errif):
		w.WriteHeader(http.StatusUnprocessableEntity)
		ne = json.NewEncoder(w).Encode(errif)
	case errors.As(err, errbr):
		w.WriteHeader(http.StatusBadRequest)
		ne = json.NewEncoder(w).Encode(errbr)
	case errors.Is(err, ErrUnavailable):
		w.WriteHeader(http.StatusServiceUnavailable)
		ne = json.NewEncoder(w).Encode(map[string]string{"message": ErrUnavailable.Error()})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		resp := map[string]string{
			"message": "server error",
		}
		ne = json.NewEncoder(w).Encode(resp)
	}
}

func HTTPNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	resp := map[string]string{
		"path": r.URL.Path,
	}
	json.NewEncoder(w).Encode(resp)
}
