package web

import (
	"fmt"
	"net/http"

	"github.com/skip2/go-qrcode"

	sessionService "github.com/Konrad-GB/voting-website/internal/services/session"
)

// qrSize is the pixel size of the generated join code
const qrSize = 256

// handleSessionQR renders a PNG QR code pointing voters at the
// session's join page
func (s *Server) handleSessionQR(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	if _, err := s.service.GetSession(r.Context(), &sessionService.GetSessionInput{
		SessionID: sessionID,
	}); err != nil {
		respondError(w, err)
		return
	}

	joinURL := fmt.Sprintf("%s/vote/%s", s.publicBaseURL, sessionID)

	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
