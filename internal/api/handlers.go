package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotelier/internal/database"
	"hotelier/internal/interval"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/service"
)

func (s *HTTPServer) handleHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := s.catalog.ListHotels(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotels": hotels})
}

func (s *HTTPServer) handleHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := s.catalog.GetHotel(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (s *HTTPServer) handleHotelRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.catalog.ListRoomsByHotel(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.catalog.ListRooms(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *HTTPServer) handleAvailability(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	checkIn := r.URL.Query().Get("check_in")
	checkOut := r.URL.Query().Get("check_out")

	result, err := s.bookings.CheckAvailability(r.Context(), roomID, checkIn, checkOut)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	// Keep conflicting_bookings an array, not null, for clients.
	if result.ConflictingBookings == nil {
		result.ConflictingBookings = []models.Booking{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleRoomBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookings.GetBookingsByRoom(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	// Active bookings only, unless the caller asks for the full history.
	includeCancelled := r.URL.Query().Get("include_cancelled") == "true"
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive || includeCancelled {
			out = append(out, b)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": out})
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var input models.CreateBookingInput
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	booking, err := s.bookings.RequestBooking(r.Context(), input)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	metrics.IncBookingCreated()
	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := s.bookings.CancelBooking(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	metrics.IncBookingCancelled()
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) handlePutSession(w http.ResponseWriter, r *http.Request) {
	var session models.GuestSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	session.SessionID = r.PathValue("id")

	if err := s.sessions.SaveSession(r.Context(), &session); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.ClearSession(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps domain errors onto HTTP statuses. Conflict is
// the only error carrying payload: the response includes the bookings
// that are in the way.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, err error) {
	var conflict *database.ConflictError
	if errors.As(err, &conflict) {
		metrics.IncBookingConflict()
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":                "requested dates conflict with existing bookings",
			"conflicting_bookings": conflict.Conflicting,
		})
		return
	}

	switch {
	case errors.Is(err, database.ErrNotFound),
		errors.Is(err, database.ErrHotelNotFound),
		errors.Is(err, database.ErrRoomNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, interval.ErrInvalidRange),
		errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrMalformedEmail),
		errors.Is(err, service.ErrStayTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
