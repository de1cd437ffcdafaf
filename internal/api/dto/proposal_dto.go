package dto

import (
	"time"

	"github.com/campus-suite/records-portal/internal/domain"
	"github.com/campus-suite/records-portal/internal/service"
)

// ProposalResponse serializes a submitted proposal.
type ProposalResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	FileName    string    `json:"fileName"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
}

// NewProposalResponse maps a proposal without a download link.
func NewProposalResponse(proposal *domain.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:          proposal.ID,
		Title:       proposal.Title,
		Company:     proposal.Company,
		Description: proposal.Description,
		FileName:    proposal.FileName,
		SizeBytes:   proposal.SizeBytes,
		CreatedAt:   proposal.CreatedAt,
	}
}

// NewProposalDownloadResponse maps a proposal with its presigned URL.
func NewProposalDownloadResponse(item service.ProposalDownload) ProposalResponse {
	resp := NewProposalResponse(&item.Proposal)
	resp.DownloadURL = item.DownloadURL
	return resp
}
