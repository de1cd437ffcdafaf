package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-suite/records-portal/internal/domain"
	"github.com/campus-suite/records-portal/internal/events"
	"github.com/campus-suite/records-portal/internal/repository"
	"github.com/campus-suite/records-portal/internal/storage"
	apperrors "github.com/campus-suite/records-portal/pkg/util"
)

const (
	contentTypePDF     = "application/pdf"
	downloadLinkExpiry = 15 * time.Minute
)

// ProposalInput carries the unvalidated proposal form fields.
type ProposalInput struct {
	Title       string
	Company     string
	Description string
}

// ProposalDownload pairs a proposal with a short-lived download URL.
type ProposalDownload struct {
	Proposal    domain.Proposal
	DownloadURL string
}

// ProposalService stores proposal PDFs in object storage and their metadata
// in the database.
type ProposalService struct {
	store      storage.Storage
	proposals  repository.ProposalRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProposalService constructs the service.
func NewProposalService(store storage.Storage, proposals repository.ProposalRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ProposalService {
	return &ProposalService{store: store, proposals: proposals, dispatcher: dispatcher, logger: logger}
}

// Submit uploads the PDF and persists the proposal. If the metadata insert
// fails the uploaded object is removed again.
func (s *ProposalService) Submit(ctx context.Context, r io.Reader, fileName, contentType string, size int64, input ProposalInput) (*domain.Proposal, error) {
	var messages []string
	if strings.TrimSpace(input.Title) == "" {
		messages = append(messages, "Please provide a title")
	}
	if strings.TrimSpace(input.Company) == "" {
		messages = append(messages, "Please provide a company")
	}
	if strings.TrimSpace(input.Description) == "" {
		messages = append(messages, "Please provide a description")
	}
	if contentType != contentTypePDF {
		messages = append(messages, "Only PDF files are allowed")
	}
	if messages != nil {
		return nil, apperrors.NewValidationError(messages)
	}

	key := "proposals/" + uuid.NewString() + ".pdf"
	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentTypePDF,
		Metadata:    map[string]string{"original-filename": fileName},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	proposal := &domain.Proposal{
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Description: strings.TrimSpace(input.Description),
		StorageKey:  key,
		FileName:    fileName,
		SizeBytes:   size,
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error("orphaned proposal object", zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("save proposal: %w", err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventProposalSubmitted,
			Timestamp: time.Now(),
			Payload: events.ProposalSubmittedPayload{
				ProposalID: proposal.ID,
				Title:      proposal.Title,
			},
		})
	}
	return proposal, nil
}

// List returns all proposals newest first, each with a presigned download URL.
// A presigning failure on one item is logged and leaves that URL empty.
func (s *ProposalService) List(ctx context.Context) ([]ProposalDownload, error) {
	proposals, err := s.proposals.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]ProposalDownload, 0, len(proposals))
	for _, proposal := range proposals {
		url, err := s.store.PresignGet(ctx, proposal.StorageKey, downloadLinkExpiry)
		if err != nil {
			s.logger.Warn("presign proposal download", zap.String("key", proposal.StorageKey), zap.Error(err))
			url = ""
		}
		result = append(result, ProposalDownload{Proposal: proposal, DownloadURL: url})
	}
	return result, nil
}
