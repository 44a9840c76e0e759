package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"prospector-engine/internal/config"
	"prospector-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setSecretReq struct {
	Value string `json:"value"`
}

func (h SecretsHandler) setSecret(w http.ResponseWriter, r *http.Request, account func(config.Config) string) {
	var req setSecretReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.Set(account(cfg), req.Value); err != nil {
		http.Error(w, "failed to store secret: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) SetSMTPPassword(w http.ResponseWriter, r *http.Request) {
	h.setSecret(w, r, secrets.SMTPAccount)
}

func (h SecretsHandler) SetSearchKey(w http.ResponseWriter, r *http.Request) {
	h.setSecret(w, r, secrets.SearchKeyAccount)
}

func (h SecretsHandler) SetIMAPPassword(w http.ResponseWriter, r *http.Request) {
	h.setSecret(w, r, secrets.IMAPAccount)
}
