package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dukerupert/questboard/internal/backup"
	"github.com/dukerupert/questboard/internal/household"
	"github.com/dukerupert/questboard/internal/model"
	"github.com/dukerupert/questboard/internal/store"
)

// BackupHandler writes encrypted snapshot exports into a directory and
// restores from them.
type BackupHandler struct {
	state  *household.State
	store  *store.BackupStore
	dir    string
	logger *slog.Logger
}

func NewBackupHandler(state *household.State, bs *store.BackupStore, dir string, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{state: state, store: bs, dir: dir, logger: logger}
}

type passphraseRequest struct {
	Passphrase string `json:"passphrase"`
}

func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req passphraseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}
	if req.Passphrase == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "passphrase is required"})
		return
	}

	path, size, err := backup.WriteFile(h.dir, h.state.Snapshot(), req.Passphrase, time.Now())
	if err != nil {
		h.logger.Error("backup export failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to write backup"})
		return
	}
	b, err := h.store.Create(r.Context(), filepath.Base(path), size)
	if err != nil {
		h.logger.Error("failed to record backup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to record backup"})
		return
	}
	h.logger.Info("backup written", "file", b.Filename, "size", size)
	writeJSON(w, http.StatusCreated, b)
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	backups, err := h.store.List(r.Context(), 50)
	if err != nil {
		h.logger.Error("failed to list backups", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list backups"})
		return
	}
	if backups == nil {
		backups = []model.Backup{}
	}
	writeJSON(w, http.StatusOK, backups)
}

func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var req passphraseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	b, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get backup", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get backup"})
		return
	}
	if b == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "backup not found"})
		return
	}

	snap, err := backup.ReadFile(filepath.Join(h.dir, b.Filename), req.Passphrase)
	if err != nil {
		if errors.Is(err, backup.ErrWrongPassphrase) {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Error("backup import failed", "id", id, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	err = h.state.Restore(r.Context(), snap)
	writeResult(w, r, h.logger, map[string]any{"restored": b}, err)
}
