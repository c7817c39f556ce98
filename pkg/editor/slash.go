package editor

import "fmt"

// SlashAction says what choosing a slash item does
type SlashAction int

const (
	// SlashCommand runs a structural command on the current block
	SlashCommand SlashAction = iota
	// SlashFragment inserts a fixed HTML fragment at the caret
	SlashFragment
	// SlashHostInput needs something from the host first (files, a URL, a prompt)
	SlashHostInput
)

// HostRequest is what the host must collect before the insertion can happen
type HostRequest int

const (
	RequestNone HostRequest = iota
	RequestImageFile
	RequestGalleryFiles
	RequestVideoURL
	RequestImagePrompt
)

func (r HostRequest) String() string {
	switch r {
	case RequestImageFile:
		return "image-file"
	case RequestGalleryFiles:
		return "gallery-files"
	case RequestVideoURL:
		return "video-url"
	case RequestImagePrompt:
		return "image-prompt"
	}
	return "none"
}

// SlashItem is one entry of the block-type catalog
type SlashItem struct {
	ID          string
	Label       string
	Description string
	Action      SlashAction
	Command     Command
	Fragment    string
	Request     HostRequest
}

var slashCatalog = []SlashItem{
	{ID: "text", Label: "Text", Description: "Plain paragraph", Action: SlashCommand, Command: CmdParagraph},
	{ID: "h1", Label: "Heading 1", Description: "Large section heading", Action: SlashCommand, Command: CmdHeading1},
	{ID: "h2", Label: "Heading 2", Description: "Medium section heading", Action: SlashCommand, Command: CmdHeading2},
	{ID: "h3", Label: "Heading 3", Description: "Small section heading", Action: SlashCommand, Command: CmdHeading3},
	{ID: "bullet", Label: "Bullet List", Description: "Unordered list", Action: SlashCommand, Command: CmdBulletList},
	{ID: "numbered", Label: "Numbered List", Description: "Ordered list", Action: SlashCommand, Command: CmdNumberedList},
	{ID: "quote", Label: "Quote", Description: "Capture a quotation", Action: SlashFragment,
		Fragment: "<blockquote>Quote</blockquote>"},
	{ID: "callout", Label: "Callout", Description: "Highlighted note", Action: SlashFragment,
		Fragment: `<div class="callout">Note</div>`},
	{ID: "code", Label: "Code Block", Description: "Preformatted code", Action: SlashFragment,
		Fragment: "<pre><code>// code</code></pre>"},
	{ID: "divider", Label: "Divider", Description: "Horizontal rule", Action: SlashFragment,
		Fragment: "<hr/><p></p>"},
	{ID: "image", Label: "Image", Description: "Upload one image", Action: SlashHostInput, Request: RequestImageFile},
	{ID: "gallery", Label: "Gallery", Description: "Upload several images", Action: SlashHostInput, Request: RequestGalleryFiles},
	{ID: "video", Label: "Video", Description: "Embed a YouTube or Vimeo link", Action: SlashHostInput, Request: RequestVideoURL},
	{ID: "ai-image", Label: "AI Image", Description: "Generate an image from a prompt", Action: SlashHostInput, Request: RequestImagePrompt},
}

// SlashItems returns the block-type catalog in display order
func SlashItems() []SlashItem {
	items := make([]SlashItem, len(slashCatalog))
	copy(items, slashCatalog)
	return items
}

// FindSlashItem looks up a catalog entry by ID
func FindSlashItem(id string) (SlashItem, bool) {
	for _, item := range slashCatalog {
		if item.ID == id {
			return item, true
		}
	}
	return SlashItem{}, false
}

// ApplySlashItem runs a catalog entry at the caret. The "/" that opened
// the menu is removed first and the menu closes. Entries that need host
// input return their request; the host follows up with InsertImages,
// InsertVideo or BeginImage.
func (e *Editor) ApplySlashItem(id string) (HostRequest, error) {
	item, ok := FindSlashItem(id)
	if !ok {
		return RequestNone, fmt.Errorf("%w: %s", ErrUnknownSlashItem, id)
	}
	if !e.Snapshot().InRoot {
		return RequestNone, ErrNoActiveBlock
	}
	trimmed := e.trimTrailingSlash()
	if _, open := e.menu.(SlashMenu); open {
		e.menu = MenuClosed{}
	}
	switch item.Action {
	case SlashCommand:
		changed := e.execQuiet(item.Command)
		if changed || trimmed {
			e.afterEdit()
		}
	case SlashFragment:
		nodes, err := parseFragment(item.Fragment)
		if err != nil {
			return RequestNone, err
		}
		e.insertFragment(nodes)
		e.afterEdit()
	case SlashHostInput:
		if trimmed {
			e.afterEdit()
		}
		return item.Request, nil
	}
	return RequestNone, nil
}

// execQuiet runs a block or inline command without emitting
func (e *Editor) execQuiet(cmd Command) bool {
	switch cmd {
	case CmdParagraph:
		return e.toParagraph()
	case CmdHeading1:
		return e.toHeading(1)
	case CmdHeading2:
		return e.toHeading(2)
	case CmdHeading3:
		return e.toHeading(3)
	case CmdBulletList:
		return e.toList("ul")
	case CmdNumberedList:
		return e.toList("ol")
	}
	return false
}
