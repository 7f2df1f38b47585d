package request

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/ezerfernandes/codeblockedit/internal/anchor"
	"github.com/ezerfernandes/codeblockedit/internal/block"
	"github.com/ezerfernandes/codeblockedit/internal/logging"
	"github.com/ezerfernandes/codeblockedit/internal/preview"
	"github.com/ezerfernandes/codeblockedit/internal/span"
	"github.com/ezerfernandes/codeblockedit/internal/store"
)

// ErrNotWritable is returned by [Handler.Save] for pages the user may not edit.
var ErrNotWritable = errors.New("page is not writable")

// Level is the severity of a user-visible message.
type Level int

const (
	LevelError Level = -1
	LevelInfo  Level = 0
)

// Message is a diagnostic shown to the user. Messages never abort a request.
type Message struct {
	Level Level
	Text  string
}

// State is carried through the steps of one request. The zero value is ready
// to use and must not be shared between requests.
type State struct {
	// Range is the positional range handed to the page editor; zero means
	// the whole page.
	Range    span.Range
	Messages []Message
	Cache    block.Cache

	page snapshot
}

// snapshot is the normalized text of the page a request works on. It is read
// once, so ranges are always applied to the text they were computed on.
type snapshot struct {
	id   string
	text string
	ok   bool
}

func (st *State) addError(err error) {
	st.Messages = append(st.Messages, Message{Level: LevelError, Text: err.Error()})
}

// ClientInfo is exposed to the browser so it only offers block edit buttons
// to users who may write the page.
type ClientInfo struct {
	CanEdit bool `json:"codeblockedit_canedit"`
}

// Handler performs the block editing steps of a request.
type Handler struct {
	store  store.Store
	auth   store.Authorizer
	logger *log.Logger
}

// New returns a Handler. A nil logger means the default logger.
func New(docs store.Store, auth store.Authorizer, logger *log.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{store: docs, auth: auth, logger: logger}
}

// Preprocess runs before the page editor and sets st.Range to the content of
// the requested block. It only acts on an edit request carrying an index, and
// never replaces a range that is already set. An invalid or unknown index adds
// a message and leaves the range unset, so the whole page is edited.
//
// Only failures to read the page are returned as errors.
func (h *Handler) Preprocess(ctx context.Context, p Params, st *State) error {
	if !p.HasIndex || p.Action != ActionEdit {
		return nil
	}

	if st.Range.IsZero() && len(p.Range) != 0 {
		r, err := span.Parse(p.Range)
		if err != nil {
			h.logger.Debug("ignoring range", logging.FieldRange, p.Range, logging.FieldError, err)
		} else {
			st.Range = r
		}
	}

	if !st.Range.IsZero() {
		h.logger.Debug("range already set", logging.FieldDocument, p.DocumentID, logging.FieldRange, st.Range.String())

		return nil
	}

	index, err := ParseIndex(p.Index)
	if err != nil {
		h.logger.Debug("rejecting index", logging.FieldIndex, p.Index)
		st.addError(err)

		return nil
	}

	match, err := h.Locate(ctx, p.DocumentID, index, st)

	switch {
	case errors.Is(err, block.ErrNotFound):
		st.addError(err)

		return nil
	case err != nil:
		return err
	}

	st.Range = span.Translate(match)

	h.logger.Debug("block range",
		logging.FieldDocument, p.DocumentID,
		logging.FieldIndex, index,
		logging.FieldRange, st.Range.String(),
	)

	return nil
}

// Preview returns the text to render for a preview request. When the request
// names a block that can be found, text is wrapped in that block's delimiters;
// otherwise it is returned unchanged without a message.
func (h *Handler) Preview(ctx context.Context, p Params, st *State, text string) (string, error) {
	if !p.HasIndex || p.Action != ActionPreview {
		return text, nil
	}

	index, err := ParseIndex(p.Index)
	if err != nil {
		return text, nil
	}

	match, err := h.Locate(ctx, p.DocumentID, index, st)

	switch {
	case errors.Is(err, block.ErrNotFound):
		return text, nil
	case err != nil:
		return text, err
	}

	return preview.Wrap(text, match), nil
}

// Save replaces the part of the page addressed by st.Range with section and
// stores the result, which is also returned.
func (h *Handler) Save(ctx context.Context, p Params, st *State, section string) (string, error) {
	if h.auth != nil && !h.auth.CanWrite(p.DocumentID) {
		return "", fmt.Errorf("%w: %s", ErrNotWritable, p.DocumentID)
	}

	page, err := h.Page(ctx, p.DocumentID, st)
	if err != nil {
		return "", err
	}

	text := span.Replace(page, st.Range, section)

	if err := h.store.Save(ctx, p.DocumentID, text); err != nil {
		return "", fmt.Errorf("save %s: %w", p.DocumentID, err)
	}

	st.page = snapshot{id: p.DocumentID, text: text, ok: true}
	st.Cache.Reset()

	h.logger.Info("saved", logging.FieldDocument, p.DocumentID, logging.FieldRange, st.Range.String())

	return text, nil
}

// HiddenFields returns the fields an edit form must carry so the index and
// the scroll anchor survive the round trip. The anchor is forwarded only when
// it has the exact shape of a block anchor.
func (h *Handler) HiddenFields(p Params) map[string]string {
	if !p.HasIndex {
		return nil
	}

	fields := make(map[string]string)

	if index, err := ParseIndex(p.Index); err == nil {
		fields[FieldIndex] = strconv.Itoa(index)
	}

	if id := anchor.Sanitize(p.AnchorID); len(id) != 0 {
		fields[FieldAnchor] = id
	}

	return fields
}

// ClientInfo reports whether the page may be edited.
func (h *Handler) ClientInfo(documentID string) ClientInfo {
	return ClientInfo{CanEdit: h.auth == nil || h.auth.CanWrite(documentID)}
}

// Locate returns the block of the page with the given index, reading the page
// at most once per distinct (page, index) pair within st.
func (h *Handler) Locate(ctx context.Context, documentID string, index int, st *State) (*block.Match, error) {
	return st.Cache.Get(documentID, index, func() (*block.Match, error) {
		page, err := h.Page(ctx, documentID, st)
		if err != nil {
			return nil, err
		}

		match, err := block.Locate(page, index)

		h.logger.Debug("locate",
			logging.FieldDocument, documentID,
			logging.FieldIndex, index,
			logging.FieldError, err,
		)

		return match, err
	})
}

// Page returns the normalized text of the page. Within st the page is read
// from the store once; later calls for the same page return that snapshot.
func (h *Handler) Page(ctx context.Context, documentID string, st *State) (string, error) {
	if st.page.ok && st.page.id == documentID {
		return st.page.text, nil
	}

	raw, err := h.store.Raw(ctx, documentID)
	if err != nil {
		return "", err
	}

	st.page = snapshot{id: documentID, text: block.Normalize(raw), ok: true}

	return st.page.text, nil
}
