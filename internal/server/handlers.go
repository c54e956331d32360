package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/inventory"
	"github.com/grandplaza/concierge/internal/meetings"
	"github.com/grandplaza/concierge/internal/models"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// HandleMessage never fails; model outages become a fallback reply.
	response := s.agent.HandleMessage(r.Context(), req.Message)
	s.respondJSON(w, http.StatusOK, map[string]string{"response": response})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.minter == nil {
		s.respondError(w, http.StatusServiceUnavailable, "media credentials not configured")
		return
	}
	var req struct {
		Identity string `json:"identity"`
		Room     string `json:"room"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	token, room, identity, err := s.minter.Mint(req.Identity, req.Room)
	if err != nil {
		s.logger.Error("token minting failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"room":     room,
		"identity": identity,
	})
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	args, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	// Tool payloads always carry success/error; HTTP status stays 200 so voice
	// pipeline callers handle outcomes uniformly.
	payload := s.tools.Call(r.Context(), name, json.RawMessage(args))
	s.respondJSON(w, http.StatusOK, payload)
}

func (s *Server) handleListRoomTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.inventory.ListRoomTypes(r.Context())
	if err != nil {
		s.logger.Error("list room types failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to list room types")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"room_types": types})
}

func (s *Server) handleListAvailable(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.inventory.ListAvailable(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		s.logger.Error("list available rooms failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to list rooms")
		return
	}
	if rooms == nil {
		rooms = []*models.Room{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"rooms": rooms})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid room id")
		return
	}
	room, err := s.inventory.GetRoom(r.Context(), id)
	if errors.Is(err, inventory.ErrRoomNotFound) {
		s.respondError(w, http.StatusNotFound, "room not found")
		return
	}
	if err != nil {
		s.logger.Error("get room failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to load room")
		return
	}
	s.respondJSON(w, http.StatusOK, room)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.inventory.Book(r.Context(), &req)
	switch {
	case errors.Is(err, inventory.ErrRoomNotFound):
		s.respondError(w, http.StatusNotFound, "room not found")
		return
	case errors.Is(err, inventory.ErrRoomOccupied):
		s.respondError(w, http.StatusConflict, "room already occupied")
		return
	case err != nil:
		s.logger.Error("booking failed", zap.Error(err))
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleBookingSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.inventory.Summary(r.Context())
	if err != nil {
		s.logger.Error("booking summary failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to load summary")
		return
	}
	s.respondJSON(w, http.StatusOK, sum)
}

func (s *Server) handleAddMeeting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
		Content  string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fileID, err := s.meetings.AddFile(r.Context(), req.Filename, req.Content)
	if errors.Is(err, meetings.ErrDuplicateFile) {
		s.respondError(w, http.StatusConflict, "meeting file already exists")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"file_id": fileID, "filename": req.Filename})
}

func (s *Server) handleIngestMeeting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fileID, err := s.meetings.IngestFile(r.Context(), req.Path)
	if errors.Is(err, meetings.ErrDuplicateFile) {
		s.respondError(w, http.StatusConflict, "meeting file already exists")
		return
	}
	if err != nil {
		s.logger.Warn("ingestion failed", zap.String("path", req.Path), zap.Error(err))
		s.respondError(w, http.StatusBadRequest, "failed to ingest file")
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"file_id": fileID})
}

func (s *Server) handleSearchMeetings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
		TopK  int    `json:"top_k"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	results, err := s.meetings.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.logger.Error("meeting search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if results == nil {
		results = []*models.MeetingSearchResult{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	content, err := s.meetings.GetContent(r.Context(), filename)
	if errors.Is(err, meetings.ErrFileNotFound) {
		s.respondError(w, http.StatusNotFound, "meeting file not found")
		return
	}
	if err != nil {
		s.logger.Error("get meeting failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to load meeting file")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"filename": filename, "content": content})
}

func (s *Server) handlePurgeMeetings(w http.ResponseWriter, r *http.Request) {
	if err := s.meetings.PurgeAll(r.Context()); err != nil {
		s.logger.Error("purge failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to purge meeting files")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "purged"})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil {
		s.respondError(w, http.StatusServiceUnavailable, "summarizer not configured")
		return
	}
	path, err := s.summarizer.Summarize(r.Context())
	if err != nil {
		s.logger.Error("summarize failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, "failed to summarize meeting")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"summary_path": path})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	if s.recorder == nil {
		s.respondError(w, http.StatusServiceUnavailable, "transcript recording not configured")
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.recorder.Append(req.Text); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":     "recorded",
		"meeting_id": s.recorder.MeetingID(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
