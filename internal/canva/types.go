package canva

import (
	"encoding/json"
	"fmt"
)

// Wire types for the Canva Connect API. Timestamps stay as the provider's
// RFC 3339 strings: these are passthrough values, not computed with.

// Asset is an uploaded media asset.
type Asset struct {
	ID        string   `json:"id"`
	Title     string   `json:"title,omitempty"`
	Filename  string   `json:"filename,omitempty"`
	FileSize  int64    `json:"file_size,omitempty"`
	MimeType  string   `json:"mime_type,omitempty"`
	FolderID  string   `json:"folder_id,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// Design is a Canva design.
type Design struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	FolderID     string `json:"folder_id,omitempty"`
	BrandKitID   string `json:"brand_kit_id,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Folder groups assets and designs.
type Folder struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	ParentID  string `json:"parent_folder_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// User identifies the authenticated Canva user.
type User struct {
	UserID string `json:"user_id"`
	TeamID string `json:"team_id,omitempty"`
}

// BrandTemplate is a reusable template that autofill jobs instantiate.
type BrandTemplate struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	ViewURL      string `json:"view_url,omitempty"`
	CreateURL    string `json:"create_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// decodeInto unmarshals raw into v with a consistent error message.
func decodeInto(raw json.RawMessage, v any, what string) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s response: %w", what, err)
	}
	return nil
}
