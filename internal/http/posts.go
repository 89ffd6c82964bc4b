package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog-server/internal/auth"
	"blog-server/internal/domain"
	"blog-server/internal/storage"
)

const imageFileField = "img_file"

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.posts.ListPosts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "index.html", gin.H{"all_posts": posts})
}

func (h *Handler) showPost(c *gin.Context) {
	id, ok := parseID(c.Query("post_id"))
	if !ok {
		fail(c, domain.ErrNotFound)
		return
	}
	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "post.html", gin.H{"post": post})
}

func (h *Handler) newPostPage(c *gin.Context) {
	h.renderPostForm(c, http.StatusOK, postForm{}, nil, 0)
}

func (h *Handler) createPost(c *gin.Context) {
	var form postForm
	var uploaded string
	errs := bindForm(c, &form)
	if len(errs) == 0 {
		uploaded = h.attachImage(c, &form, errs)
	}
	if len(errs) > 0 {
		h.renderPostForm(c, http.StatusUnprocessableEntity, form, errs, 0)
		return
	}

	user := auth.UserFrom(c)
	post, err := h.posts.CreatePost(c.Request.Context(), user.ID, form.content())
	if err != nil {
		h.discardUpload(c, uploaded)
		if errs, ok := serviceFieldErrors(err); ok {
			h.renderPostForm(c, http.StatusUnprocessableEntity, form, errs, 0)
			return
		}
		if errors.Is(err, domain.ErrConflict) {
			h.flash(c, fmt.Sprintf("A post titled %q already exists.", form.Title))
			c.Redirect(http.StatusFound, "/new-post")
			return
		}
		fail(c, err)
		return
	}

	h.logger.WithField("post_id", post.ID).Info("post created")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) editPostPage(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		fail(c, domain.ErrNotFound)
		return
	}
	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	h.renderPostForm(c, http.StatusOK, postFormFrom(post), nil, post.ID)
}

func (h *Handler) updatePost(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		fail(c, domain.ErrNotFound)
		return
	}
	existing, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	var form postForm
	var uploaded string
	errs := bindForm(c, &form)
	if len(errs) == 0 {
		uploaded = h.attachImage(c, &form, errs)
	}
	if len(errs) > 0 {
		h.renderPostForm(c, http.StatusUnprocessableEntity, form, errs, id)
		return
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), id, form.content())
	if err != nil {
		h.discardUpload(c, uploaded)
		if errs, ok := serviceFieldErrors(err); ok {
			h.renderPostForm(c, http.StatusUnprocessableEntity, form, errs, id)
			return
		}
		if errors.Is(err, domain.ErrConflict) {
			h.flash(c, fmt.Sprintf("A post titled %q already exists.", form.Title))
			c.Redirect(http.StatusFound, fmt.Sprintf("/edit-post/%d", id))
			return
		}
		fail(c, err)
		return
	}

	if uploaded != "" && existing.ImgURL != post.ImgURL {
		h.discardUpload(c, existing.ImgURL)
	}
	h.logger.WithField("post_id", post.ID).Info("post updated")
	c.Redirect(http.StatusFound, fmt.Sprintf("/post?post_id=%d", post.ID))
}

func (h *Handler) deletePost(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		fail(c, domain.ErrNotFound)
		return
	}
	post, err := h.posts.DeletePost(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	h.discardUpload(c, post.ImgURL)
	h.logger.WithField("post_id", post.ID).Info("post deleted")
	c.Redirect(http.StatusFound, "/")
}

// attachImage stores an uploaded header image, points the form at it and returns
// its URL. Without an upload the form must carry an image URL.
func (h *Handler) attachImage(c *gin.Context, form *postForm, errs map[string]string) string {
	fileHeader, err := c.FormFile(imageFileField)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			errs[imageFileField] = "The uploaded file could not be read."
			return ""
		}
		if form.ImgURL == "" {
			errs["img_url"] = "Enter an image URL or upload an image."
		}
		return ""
	}

	if h.images == nil {
		errs[imageFileField] = "Image uploads are not enabled, use an image URL instead."
		return ""
	}

	file, err := fileHeader.Open()
	if err != nil {
		errs[imageFileField] = "The uploaded file could not be read."
		return ""
	}
	defer file.Close()

	url, err := h.images.PutImage(c.Request.Context(), file)
	switch {
	case errors.Is(err, storage.ErrNotImage):
		errs[imageFileField] = "The uploaded file is not an image."
	case errors.Is(err, storage.ErrTooLarge):
		errs[imageFileField] = "The uploaded image is too large."
	case err != nil:
		h.logger.WithError(err).Error("store header image")
		errs[imageFileField] = "The image could not be stored, please try again."
	default:
		form.ImgURL = url
		return url
	}
	return ""
}

// discardUpload removes an image this server stored. Failures only leave an
// orphaned object behind, so they are logged and otherwise ignored.
func (h *Handler) discardUpload(c *gin.Context, url string) {
	if h.images == nil || url == "" {
		return
	}
	if err := h.images.DeleteImage(c.Request.Context(), url); err != nil {
		h.logger.WithError(err).WithField("img_url", url).Warn("delete header image")
	}
}

func (h *Handler) renderPostForm(c *gin.Context, status int, form postForm, errs map[string]string, postID int64) {
	action := "/new-post"
	if postID > 0 {
		action = fmt.Sprintf("/edit-post/%d", postID)
	}
	h.render(c, status, "make-post.html", gin.H{
		"form":            form,
		"errors":          errs,
		"action":          action,
		"is_edit":         postID > 0,
		"uploads_enabled": h.images != nil,
	})
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
