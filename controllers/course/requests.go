package controllers

// Request bodies shared between the validators and the handlers.

type CourseRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type CourseUpdateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Currency     string `json:"currency"`
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  *bool  `json:"is_published"`
}

type ModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type LectureRequest struct {
	Title    string `json:"title"`
	VideoURL string `json:"video_url"`
}

type ReorderRequest struct {
	OrderedIDs []uint `json:"ordered_ids"`
}
