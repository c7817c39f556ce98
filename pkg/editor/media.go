package editor

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	ErrNoImages         = errors.New("no images given")
	ErrNotImage         = errors.New("file is not an image")
	ErrUnsupportedVideo = errors.New("unsupported video url")
)

// ImageFile is an uploaded image
type ImageFile struct {
	Name     string
	MIMEType string
	Data     []byte
}

// ImageFileFromPath reads an image from disk and sniffs its type
func ImageFileFromPath(path string) (ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageFile{}, fmt.Errorf("failed to read image: %w", err)
	}
	mt := http.DetectContentType(data)
	if !strings.HasPrefix(mt, "image/") {
		// SVG sniffs as text; trust the extension for it.
		mt = mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	}
	if !strings.HasPrefix(mt, "image/") {
		return ImageFile{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotImage)
	}
	return ImageFile{Name: filepath.Base(path), MIMEType: mt, Data: data}, nil
}

// DataURI encodes the image inline so the document stays self-contained
func (f ImageFile) DataURI() string {
	return "data:" + f.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

func imageNode(f ImageFile) *html.Node {
	return newElement("img", attr("src", f.DataURI()), attr("alt", f.Name))
}

// InsertImages inserts one image as a figure, several as a gallery
func (e *Editor) InsertImages(files []ImageFile) error {
	if len(files) == 0 {
		return ErrNoImages
	}
	var block *html.Node
	if len(files) == 1 {
		block = newElement("figure")
		block.AppendChild(imageNode(files[0]))
	} else {
		block = newElement("div", attr("class", "gallery"))
		for _, f := range files {
			block.AppendChild(imageNode(f))
		}
	}
	e.insertBlock(block)
	return nil
}

// InsertVideo embeds a YouTube or Vimeo link
func (e *Editor) InsertVideo(rawURL string) error {
	src, err := EmbedURL(rawURL)
	if err != nil {
		return err
	}
	block := newElement("div", attr("class", "video-embed"))
	block.AppendChild(newElement("iframe", attr("src", src), attr("allowfullscreen", "")))
	e.insertBlock(block)
	return nil
}

// insertBlock places a built block at the caret, or at the end of the
// document without one, and emits
func (e *Editor) insertBlock(block *html.Node) {
	if !e.Snapshot().InRoot {
		e.placeCaret(e.endPosition())
	}
	e.insertFragment([]*html.Node{block})
	e.afterEdit()
}

var (
	youtubeID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
	vimeoID   = regexp.MustCompile(`^[0-9]+$`)
)

// EmbedURL converts a YouTube or Vimeo watch link into its embed URL
func EmbedURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%q: %w", rawURL, ErrUnsupportedVideo)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case segs[0] == "watch":
			id = u.Query().Get("v")
		case len(segs) == 2 && (segs[0] == "embed" || segs[0] == "shorts" || segs[0] == "live"):
			id = segs[1]
		}
		if youtubeID.MatchString(id) {
			return "https://www.youtube.com/embed/" + id, nil
		}
	case "youtu.be":
		if len(segs) == 1 && youtubeID.MatchString(segs[0]) {
			return "https://www.youtube.com/embed/" + segs[0], nil
		}
	case "vimeo.com":
		id = segs[len(segs)-1]
		if vimeoID.MatchString(id) {
			return "https://player.vimeo.com/video/" + id, nil
		}
	case "player.vimeo.com":
		if len(segs) == 2 && segs[0] == "video" && vimeoID.MatchString(segs[1]) {
			return "https://player.vimeo.com/video/" + segs[1], nil
		}
	}
	return "", fmt.Errorf("%q: %w", rawURL, ErrUnsupportedVideo)
}
