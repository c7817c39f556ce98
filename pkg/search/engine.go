package search

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quillpad/quill-terminal/pkg/editor"
	"github.com/quillpad/quill-terminal/pkg/files"
)

// Item is a searchable post
type Item struct {
	Slug     string
	Title    string
	Text     string // plain text of the post, one line per block
	Modified time.Time
	Words    int
	Archived bool
}

// NewItem derives the searchable fields of a post from its HTML
func NewItem(slug, title, content string, modified time.Time, archived bool) Item {
	text := ""
	if doc, err := editor.ParseDocument(content); err == nil {
		text = doc.Text()
	}
	return Item{
		Slug:     slug,
		Title:    title,
		Text:     text,
		Modified: modified,
		Words:    editor.ComputeStats(content).Words,
		Archived: archived,
	}
}

// Result is a matching post with its relevance score
type Result struct {
	Item       Item
	Score      float64
	Highlights []string
}

// Index holds the posts and an inverted word index over title and text
type Index struct {
	mu            sync.RWMutex
	items         []Item
	contentTokens map[string][]int
}

// Engine evaluates queries against indexed posts
type Engine struct {
	index  *Index
	parser *Parser
	now    func() time.Time

	// IncludeArchived keeps archived posts in results even when the query
	// does not ask for them with status:archived
	IncludeArchived bool
}

// NewEngine creates a new search engine
func NewEngine() *Engine {
	return &Engine{
		index:  &Index{contentTokens: make(map[string][]int)},
		parser: NewParser(),
		now:    time.Now,
	}
}

// Load replaces the indexed posts
func (e *Engine) Load(items []Item) {
	e.index.mu.Lock()
	defer e.index.mu.Unlock()

	e.index.items = nil
	e.index.contentTokens = make(map[string][]int)
	for _, item := range items {
		e.addToIndex(item)
	}
}

// BuildIndex indexes the posts of the current project
func (e *Engine) BuildIndex(includeArchived bool) error {
	var items []Item
	add := func(slugs []string, archived bool) {
		for _, slug := range slugs {
			post, err := files.ReadArchivedOrActivePost(slug, archived)
			if err != nil {
				continue // Skip posts that can't be read
			}
			items = append(items, NewItem(slug, post.Title, post.Content, post.Modified, archived))
		}
	}

	active, err := files.ListPosts()
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}
	add(active, false)

	if includeArchived {
		archived, err := files.ListArchivedPosts()
		if err != nil {
			return fmt.Errorf("failed to list archived posts: %w", err)
		}
		add(archived, true)
	}

	e.Load(items)
	return nil
}

// addToIndex adds an item to the index and updates the token index
func (e *Engine) addToIndex(item Item) {
	idx := len(e.index.items)
	e.index.items = append(e.index.items, item)

	for _, token := range tokenizeContent(item.Title + " " + item.Text) {
		e.index.contentTokens[token] = append(e.index.contentTokens[token], idx)
	}
}

// Search performs a search using the given query. An empty query matches
// every post.
func (e *Engine) Search(queryStr string) ([]Result, error) {
	query, err := e.parser.Parse(queryStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	e.index.mu.RLock()
	defer e.index.mu.RUnlock()

	var finalMatches []int
	if len(query.Conditions) == 0 {
		for i := range e.index.items {
			finalMatches = append(finalMatches, i)
		}
	} else {
		conditionMatches := make([][]int, 0, len(query.Conditions))
		for _, condition := range query.Conditions {
			conditionMatches = append(conditionMatches, e.evaluateCondition(condition))
		}
		finalMatches = e.combineMatches(conditionMatches, query.Logic)
	}

	hideArchived := !e.IncludeArchived && !mentionsStatus(query)
	results := make([]Result, 0, len(finalMatches))
	for _, idx := range finalMatches {
		item := e.index.items[idx]
		if hideArchived && item.Archived {
			continue
		}
		results = append(results, Result{
			Item:       item,
			Score:      e.calculateScore(item, query),
			Highlights: generateHighlights(item, query),
		})
	}

	sortResults(results)
	return results, nil
}

func mentionsStatus(q *Query) bool {
	for _, c := range q.Conditions {
		if c.Field == FieldStatus {
			return true
		}
	}
	return false
}

// evaluateCondition returns the indices of the items matching condition
func (e *Engine) evaluateCondition(condition Condition) []int {
	var matches []int
	items := e.index.items

	switch condition.Field {
	case FieldTitle:
		pattern := strings.ToLower(condition.Value.(string))
		for i, item := range items {
			if strings.Contains(strings.ToLower(item.Title), pattern) ||
				strings.Contains(item.Slug, pattern) {
				matches = append(matches, i)
			}
		}

	case FieldContent:
		searchTerm := strings.ToLower(condition.Value.(string))
		if indices, exists := e.index.contentTokens[searchTerm]; exists {
			matches = deduplicateIndices(indices)
		} else {
			// Substring search for phrases and word fragments
			for i, item := range items {
				if strings.Contains(strings.ToLower(item.Text), searchTerm) ||
					strings.Contains(strings.ToLower(item.Title), searchTerm) {
					matches = append(matches, i)
				}
			}
		}

	case FieldStatus:
		archived := condition.Value.(string) == "archived"
		for i, item := range items {
			if item.Archived == archived {
				matches = append(matches, i)
			}
		}

	case FieldModified:
		cutoff := e.now().Add(-condition.Value.(time.Duration))
		for i, item := range items {
			if condition.Operator == OperatorGreaterThan && item.Modified.After(cutoff) {
				matches = append(matches, i)
			} else if condition.Operator == OperatorLessThan && item.Modified.Before(cutoff) {
				matches = append(matches, i)
			}
		}

	case FieldWords:
		n := condition.Value.(int)
		for i, item := range items {
			if condition.Operator == OperatorGreaterThan && item.Words > n {
				matches = append(matches, i)
			} else if condition.Operator == OperatorLessThan && item.Words < n {
				matches = append(matches, i)
			}
		}
	}

	if condition.Negate {
		matches = e.invertMatches(matches)
	}
	return matches
}

// combineMatches combines match sets left to right with the logic operators
func (e *Engine) combineMatches(conditionMatches [][]int, operators []Operator) []int {
	if len(conditionMatches) == 0 {
		return []int{}
	}

	result := conditionMatches[0]
	for i := 1; i < len(conditionMatches); i++ {
		if i-1 >= len(operators) {
			break
		}
		switch operators[i-1] {
		case OperatorAND:
			result = intersectSlices(result, conditionMatches[i])
		case OperatorOR:
			result = unionSlices(result, conditionMatches[i])
		}
	}
	return result
}

// invertMatches returns all indices not in the given matches
func (e *Engine) invertMatches(matches []int) []int {
	matchSet := make(map[int]bool, len(matches))
	for _, m := range matches {
		matchSet[m] = true
	}

	var inverted []int
	for i := range e.index.items {
		if !matchSet[i] {
			inverted = append(inverted, i)
		}
	}
	return inverted
}

// calculateScore calculates relevance score for a search result
func (e *Engine) calculateScore(item Item, query *Query) float64 {
	score := 1.0

	for _, condition := range query.Conditions {
		if condition.Negate {
			continue
		}
		switch condition.Field {
		case FieldTitle, FieldContent:
			pattern := strings.ToLower(condition.Value.(string))
			title := strings.ToLower(item.Title)
			if title == pattern {
				score += 2.0
			} else if strings.Contains(title, pattern) {
				score += 1.0
			}
		}
	}

	age := e.now().Sub(item.Modified)
	if age < 24*time.Hour {
		score += 1.0
	} else if age < 7*24*time.Hour {
		score += 0.5
	}
	return score
}

// generateHighlights returns excerpts of the text around content matches
func generateHighlights(item Item, query *Query) []string {
	var highlights []string
	for _, condition := range query.Conditions {
		if condition.Field != FieldContent || condition.Negate {
			continue
		}
		highlights = append(highlights, extractExcerpts(item.Text, condition.Value.(string), 3, 40)...)
	}
	return highlights
}

func tokenizeContent(content string) []string {
	var tokens []string
	content = strings.ReplaceAll(strings.ToLower(content), "-", " ")
	for _, word := range strings.Fields(content) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if len(word) > 2 { // Skip very short words
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func intersectSlices(a, b []int) []int {
	set := make(map[int]bool, len(a))
	for _, v := range a {
		set[v] = true
	}

	var result []int
	for _, v := range b {
		if set[v] {
			result = append(result, v)
		}
	}
	return result
}

func deduplicateIndices(indices []int) []int {
	seen := make(map[int]bool)
	var result []int
	for _, idx := range indices {
		if !seen[idx] {
			seen[idx] = true
			result = append(result, idx)
		}
	}
	return result
}

func unionSlices(a, b []int) []int {
	return deduplicateIndices(append(append([]int{}, a...), b...))
}

// sortResults orders by score, then newest first, then slug
func sortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Item.Modified.Equal(b.Item.Modified) {
			return a.Item.Modified.After(b.Item.Modified)
		}
		return a.Item.Slug < b.Item.Slug
	})
}

func extractExcerpts(content, searchTerm string, maxExcerpts, contextChars int) []string {
	var excerpts []string
	lowerContent := strings.ToLower(content)
	lowerTerm := strings.ToLower(searchTerm)
	if lowerTerm == "" || len(lowerContent) != len(content) {
		return nil
	}

	index := 0
	for i := 0; i < maxExcerpts; i++ {
		pos := strings.Index(lowerContent[index:], lowerTerm)
		if pos == -1 {
			break
		}
		pos += index

		start := max(0, pos-contextChars)
		end := min(len(content), pos+len(searchTerm)+contextChars)
		start, end = runeBoundary(content, start, false), runeBoundary(content, end, true)

		excerpt := strings.ReplaceAll(content[start:end], "\n", " ")
		if start > 0 {
			excerpt = "..." + excerpt
		}
		if end < len(content) {
			excerpt += "..."
		}
		excerpts = append(excerpts, excerpt)
		index = pos + len(searchTerm)
	}
	return excerpts
}

// runeBoundary moves i off the middle of a multi-byte rune
func runeBoundary(s string, i int, forward bool) int {
	for i > 0 && i < len(s) && s[i]&0xC0 == 0x80 {
		if forward {
			i++
		} else {
			i--
		}
	}
	return i
}
