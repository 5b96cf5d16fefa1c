package post

type CreatePostRequest struct {
	Title        string   `json:"title" binding:"required"`
	Message      string   `json:"message" binding:"required"`
	Creator      string   `json:"creator"`
	Tags         []string `json:"tags"`
	SelectedFile string   `json:"selectedFile"`
}

type UpdatePostRequest struct {
	Title        *string   `json:"title"`
	Message      *string   `json:"message"`
	Tags         *[]string `json:"tags"`
	SelectedFile *string   `json:"selectedFile"`
	LikeCount    *int      `json:"likeCount"`
}

type PageInfo struct {
	Count int64 `json:"count"`
	Pages int64 `json:"pages"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
