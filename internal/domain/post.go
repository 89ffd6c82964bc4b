package domain

// PostDateLayout renders the creation date shown under each post title.
const PostDateLayout = "January 02, 2006"

// Post is a blog article authored by a user.
type Post struct {
	ID         int64
	AuthorID   int64
	AuthorName string
	Title      string
	Subtitle   string
	Date       string
	Body       string
	ImgURL     string
}

// PostContent holds the editable fields of a post.
type PostContent struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}
