package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"freeform-backend/internal/errs"
	"log"
)

// RenderOptions are passed through to the document renderer
type RenderOptions struct {
	Format     string
	Background bool
	Scale      float64
	Padding    int
}

var DefaultRenderOptions = RenderOptions{
	Format:     "png",
	Background: true,
	Scale:      2,
	Padding:    64,
}

// Document is the drawing engine as seen by the save pipeline
type Document interface {
	Snapshot() (json.RawMessage, error)
	ShapeIDs() []string
	RenderImage(ctx context.Context, shapeIDs []string, opts RenderOptions) ([]byte, error)
}

// ImageUploader stores a rendered image at the user's stable snapshot path
type ImageUploader interface {
	UploadImage(ctx context.Context, data []byte) (string, error)
}

// BoardWriter persists the board. A nil snapshotURL leaves the stored image untouched.
type BoardWriter interface {
	SaveBoard(ctx context.Context, snapshot json.RawMessage, snapshotURL *string) error
}

type OutcomeKind int

const (
	SavedWithImage OutcomeKind = iota
	SavedWithoutImage
	SaveFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case SavedWithImage:
		return "saved_with_image"
	case SavedWithoutImage:
		return "saved_without_image"
	default:
		return "save_failed"
	}
}

// Outcome describes one pipeline run. ExportErr and UploadErr are recovered
// failures; Err is set only when Kind is SaveFailed.
type Outcome struct {
	Kind      OutcomeKind
	ImageURL  string
	ExportErr error
	UploadErr error
	Err       error
}

// Save runs the pipeline once. Rendering and uploading are best effort;
// serializing the document and writing the board are not. uploader may be nil.
func Save(ctx context.Context, doc Document, uploader ImageUploader, writer BoardWriter, render RenderOptions) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("autosave: pipeline panic: %v", r)
			outcome = Outcome{
				Kind:      SaveFailed,
				ExportErr: outcome.ExportErr,
				UploadErr: outcome.UploadErr,
				Err:       fmt.Errorf("save pipeline panic: %v", r),
			}
		}
	}()

	snapshot, err := doc.Snapshot()
	if err != nil {
		return Outcome{Kind: SaveFailed, Err: fmt.Errorf("serialize document: %w", err)}
	}

	image, exportErr := renderImage(ctx, doc, render)
	outcome.ExportErr = exportErr
	if exportErr != nil && !errors.Is(exportErr, errs.ErrNoImage) {
		log.Printf("autosave: export failed, saving without image: %v", exportErr)
	}

	var imageURL *string
	if exportErr == nil && uploader != nil {
		url, err := uploader.UploadImage(ctx, image)
		if err != nil {
			outcome.UploadErr = fmt.Errorf("upload snapshot image: %w", err)
			log.Printf("autosave: %v", outcome.UploadErr)
		} else {
			imageURL = &url
		}
	}

	if err := writer.SaveBoard(ctx, snapshot, imageURL); err != nil {
		outcome.Kind = SaveFailed
		outcome.Err = fmt.Errorf("save board: %w", err)
		return outcome
	}

	if imageURL != nil {
		outcome.Kind = SavedWithImage
		outcome.ImageURL = *imageURL
		return outcome
	}
	outcome.Kind = SavedWithoutImage
	return outcome
}

func renderImage(ctx context.Context, doc Document, render RenderOptions) ([]byte, error) {
	ids := doc.ShapeIDs()
	if len(ids) == 0 {
		return nil, errs.ErrNoImage
	}
	image, err := doc.RenderImage(ctx, ids, render)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	if len(image) == 0 {
		return nil, errs.ErrNoImage
	}
	return image, nil
}
