package domain

import "time"

// Aspiration is the primary domain record: a submitted complaint, suggestion,
// or proposal tracked through the workflow stages.
//
// ID is the internal storage key and never leaves the staff surface;
// TrackingID is the public code handed to the submitter. Both are immutable
// once assigned. Responses are append-only in chronological order.
type Aspiration struct {
	ID            string              `json:"id"`
	TrackingID    string              `json:"trackingId"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Category      AspirationCategory  `json:"category"`
	Subject       string              `json:"subject"`
	Description   string              `json:"description"`
	Status        AspirationStatus    `json:"status"`
	CreatedAt     int64               `json:"createdAt"`
	UpdatedAt     int64               `json:"updatedAt"`
	Responses     []AspirationResponse `json:"responses"`
	InternalNotes string              `json:"internalNotes,omitempty"`
	AssignedTo    UserRole            `json:"assignedTo,omitempty"`
	TanggapanKema string              `json:"tanggapanKema,omitempty"`
	TanggapanMPM  string              `json:"tanggapanMpm,omitempty"`
}

// AspirationResponse is an official staff response embedded in its parent
// aspiration. StatusAtResponse snapshots the aspiration's status at the
// moment the response was recorded and is immutable once written.
type AspirationResponse struct {
	ID               string           `json:"id"`
	AuthorRole       UserRole         `json:"authorRole"`
	AuthorName       string           `json:"authorName"`
	Content          string           `json:"content"`
	Timestamp        int64            `json:"timestamp"`
	StatusAtResponse AspirationStatus `json:"statusAtResponse"`
	FileURL          string           `json:"fileUrl,omitempty"`
}

// TrackMapping maps a public tracking code to the internal aspiration id.
// A pure index record with no business meaning beyond the mapping.
type TrackMapping struct {
	ID    string `json:"id"`
	RefID string `json:"refId"`
}

// NowMillis returns the current time as Unix milliseconds, the timestamp
// representation used on the wire and in stored records.
func NowMillis() int64 { return time.Now().UnixMilli() }
