package video

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	config "github.com/kiprotich-dev/lingua_connect/configs"
)

// Room is a video room at the Daily REST API. URL is what gets stored on the
// booking as the video call link.
type Room struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type createRoomRequest struct {
	Name       string         `json:"name"`
	Privacy    string         `json:"privacy"`
	Properties roomProperties `json:"properties"`
}

type roomProperties struct {
	Exp           int64 `json:"exp"`
	EjectAtExp    bool  `json:"eject_at_room_exp"`
	MaxParticipants int `json:"max_participants"`
}

// CreateRoom creates a private room for a session. The room expires shortly
// after the session ends so stale links cannot be reused.
func CreateRoom(bookingID string, endTime time.Time) (*Room, error) {
	apiKey := config.Config("DAILY_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("failed to connect to session_service")
	}

	payload := createRoomRequest{
		Name:    fmt.Sprintf("session-%s", bookingID),
		Privacy: "private",
		Properties: roomProperties{
			Exp:             endTime.Add(10 * time.Minute).Unix(),
			EjectAtExp:      true,
			MaxParticipants: 2,
		},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", "https://api.daily.co/v1/rooms", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session_service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create room: %s", string(respBody))
	}

	var room Room
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}
