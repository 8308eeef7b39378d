package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mural/backend/internal/logging"
	"github.com/mural/backend/internal/models"
	"github.com/mural/backend/internal/social"
)

// Extension whitelists per attachment kind, mirroring the upload policy.
var attachmentExtensions = map[string]map[string]bool{
	"image": {".jpg": true, ".jpeg": true, ".png": true},
	"audio": {".mp3": true, ".wav": true},
	"video": {".mp4": true, ".avi": true},
}

// PostHandler exposes post authoring, the home feed, likes, and comments.
type PostHandler struct {
	Content        ContentService
	Graph          GraphService
	Storage        AttachmentStorage
	MaxUploadBytes int64
}

// Create handles POST /api/v1/posts as a multipart form with fields title,
// body, and optional file parts image, audio, and video.
func (h PostHandler) Create(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	maxBytes := h.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		logger.Warn("invalid multipart payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	body := strings.TrimSpace(r.FormValue("body"))

	var attachments social.Attachments
	for kind, target := range map[string]*string{
		"image": &attachments.Image,
		"audio": &attachments.Audio,
		"video": &attachments.Video,
	} {
		location, err := h.saveAttachment(r, kind)
		if err != nil {
			respondError(ctx, w, err)
			return
		}
		*target = location
	}

	post, err := h.Content.CreatePost(ctx, userID, title, body, attachments)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, postResponse{Post: post})
}

// saveAttachment stores the named file part, if present, under a generated
// name and returns its location.
func (h PostHandler) saveAttachment(r *http.Request, kind string) (string, error) {
	file, header, err := r.FormFile(kind)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", &social.ValidationError{Msg: fmt.Sprintf("invalid %s upload", kind)}
	}
	defer file.Close()

	location, err := h.storeFile(r, kind, file, header)
	if err != nil {
		return "", err
	}
	return location, nil
}

func (h PostHandler) storeFile(r *http.Request, kind string, file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !attachmentExtensions[kind][ext] {
		return "", &social.ValidationError{Msg: fmt.Sprintf("unsupported %s file type %q", kind, ext)}
	}

	name := fmt.Sprintf("post_%ss/%s%s", kind, strings.ReplaceAll(uuid.NewString(), "-", ""), ext)

	location, err := h.Storage.Save(r.Context(), name, file)
	if err != nil {
		return "", fmt.Errorf("store %s attachment: %w", kind, err)
	}

	return location, nil
}

// Get handles GET /api/v1/posts/get?id=..., returning the post with its
// likes count and comments.
func (h PostHandler) Get(w http.ResponseWriter, r *http.Request, _ string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	postID := strings.TrimSpace(r.URL.Query().Get("id"))
	if postID == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "query parameter id is required"})
		return
	}

	post, err := h.Content.GetPost(ctx, postID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	likes, err := h.Content.LikesCount(ctx, postID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	comments, err := h.Content.CommentsFor(ctx, postID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, postDetailResponse{Post: post, LikesCount: likes, Comments: comments})
}

// Mine handles GET /api/v1/posts, listing the caller's own posts.
func (h PostHandler) Mine(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	posts, err := h.Content.PostsBy(ctx, userID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, postListResponse{Posts: posts})
}

// Delete handles POST /api/v1/posts/delete.
func (h PostHandler) Delete(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var req postIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.Content.DeletePost(ctx, userID, strings.TrimSpace(req.PostID)); err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Feed handles GET /api/v1/feed.
func (h PostHandler) Feed(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	posts, err := h.Graph.Feed(ctx, userID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, postListResponse{Posts: posts})
}

// Like handles POST /api/v1/posts/like, toggling the caller's like.
func (h PostHandler) Like(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var req postIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	liked, err := h.Content.ToggleLike(ctx, userID, strings.TrimSpace(req.PostID))
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	status := "unliked"
	if liked {
		status = "liked"
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": status})
}

// Comment handles POST /api/v1/posts/comment.
func (h PostHandler) Comment(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	comment, err := h.Content.AddComment(ctx, userID, strings.TrimSpace(req.PostID), req.Body)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, commentResponse{Comment: comment})
}

type postIDRequest struct {
	PostID string `json:"postId"`
}

type commentRequest struct {
	PostID string `json:"postId"`
	Body   string `json:"body"`
}

type postResponse struct {
	Post models.Post `json:"post"`
}

type postListResponse struct {
	Posts []models.Post `json:"posts"`
}

type postDetailResponse struct {
	Post       models.Post      `json:"post"`
	LikesCount int              `json:"likesCount"`
	Comments   []models.Comment `json:"comments"`
}

type commentResponse struct {
	Comment models.Comment `json:"comment"`
}
