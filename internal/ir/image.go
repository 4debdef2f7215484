package ir

// ImageRef records one media entry discovered in the source container.
// Images are not content blocks; they are an inventory used for optional
// extraction, and a missing or unreadable entry degrades to a textual
// placeholder block plus an asset diagnostic.
type ImageRef struct {
	Name      string `json:"name"`                // archive-internal name, e.g. media/image1.png
	Format    string `json:"format,omitempty"`    // png, jpeg, gif, ...
	Size      int64  `json:"size,omitempty"`      // compressed size in the container
	Extracted string `json:"extracted,omitempty"` // local path after extraction
}

// AddImage records a media entry on the document.
func (d *Document) AddImage(ref ImageRef) {
	d.Images = append(d.Images, ref)
}
