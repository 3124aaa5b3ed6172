package api

type GalleryItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Image string `json:"image"`
}

// GalleryPage is one rendered page of the gallery.
type GalleryPage struct {
	Page         int           `json:"page"`
	Query        string        `json:"query,omitempty"`
	Status       string        `json:"status"`
	Items        []GalleryItem `json:"items"`
	Message      string        `json:"message,omitempty"`
	PrevDisabled bool          `json:"prev_disabled"`
	NextDisabled bool          `json:"next_disabled"`
}

type Error struct {
	Error string `json:"error"`
}

// MediaPurge names media whose cached featured image must be dropped.
type MediaPurge struct {
	ID  int   `json:"id,omitempty"`
	IDs []int `json:"ids,omitempty"`
}
