package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/versecrew/versecrew-backend-go/internal/domain/document"
	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
	"github.com/versecrew/versecrew-backend-go/internal/domain/notification"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/database"
	"github.com/versecrew/versecrew-backend-go/internal/pkg/storage"
)

type DocumentService struct {
	db *database.DB
	document.Repository
	memberRepo   member.MemberRepository
	fileStorage  storage.FileStorage
	notifService notification.Service
}

func NewDocumentService(
	db *database.DB,
	documentRepository document.Repository,
	memberRepository member.MemberRepository,
	fileStorage storage.FileStorage,
	notifService notification.Service,
) document.Service {
	return &DocumentService{
		db:           db,
		Repository:   documentRepository,
		memberRepo:   memberRepository,
		fileStorage:  fileStorage,
		notifService: notifService,
	}
}

func (s *DocumentService) Create(ctx context.Context, orgID, authorID string, req *document.CreateDocumentRequest) (*document.DocumentResponse, error) {
	d := &document.Document{
		OrganizationID: orgID,
		AuthorID:       authorID,
		Title:          req.Title,
		Category:       req.Category,
		Body:           req.Body,
		MinRole:        member.Role(req.MinRole),
		RequiresAck:    req.RequiresAck,
	}
	if req.Publish {
		now := time.Now()
		d.PublishedAt = &now
	}

	created, err := s.Repository.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	if created.IsPublished() {
		s.notifyPublished(ctx, created)
	}

	resp := document.ToResponse(created)
	return &resp, nil
}

// Get returns the document to a member whose role clears the visibility
// floor. Unpublished documents are only visible to documents.manage roles.
func (s *DocumentService) Get(ctx context.Context, orgID, documentID, userID string, role member.Role) (*document.DocumentResponse, error) {
	d, err := s.getForOrg(ctx, orgID, documentID)
	if err != nil {
		return nil, err
	}

	canManage := member.HasPermission(role, member.PermissionDocumentsManage)
	if !d.VisibleTo(role) && !canManage {
		return nil, document.ErrNotVisible
	}
	if !d.IsPublished() && !canManage {
		return nil, document.ErrDocumentNotPublished
	}

	resp := document.ToResponse(d)
	if d.RequiresAck {
		acked, err := s.Repository.HasAcked(ctx, documentID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check acknowledgment: %w", err)
		}
		resp.Acknowledged = acked
	}

	return &resp, nil
}

func (s *DocumentService) List(ctx context.Context, orgID, userID string, filter document.ListDocumentsFilter) (*document.ListDocumentsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	// Only managers see drafts, whatever the caller asked for.
	if !member.HasPermission(filter.Role, member.PermissionDocumentsManage) {
		filter.IncludeUnpublished = false
	}

	docs, total, err := s.Repository.ListByOrganization(ctx, orgID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	acked, err := s.Repository.AckedDocumentIDs(ctx, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acknowledgments: %w", err)
	}

	responses := make([]document.DocumentResponse, len(docs))
	for i, d := range docs {
		resp := document.ToResponse(d)
		resp.Acknowledged = acked[d.ID]
		// Bodies stay out of list payloads; they can be long.
		resp.Body = ""
		responses[i] = resp
	}

	return &document.ListDocumentsResponse{
		Documents: responses,
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}, nil
}

func (s *DocumentService) Update(ctx context.Context, orgID, documentID string, req *document.UpdateDocumentRequest) (*document.DocumentResponse, error) {
	d, err := s.getForOrg(ctx, orgID, documentID)
	if err != nil {
		return nil, err
	}

	d.Title = req.Title
	d.Category = req.Category
	d.Body = req.Body
	d.MinRole = member.Role(req.MinRole)
	if req.RequiresAck != nil {
		d.RequiresAck = *req.RequiresAck
	}

	updated, err := s.Repository.Update(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	resp := document.ToResponse(updated)
	return &resp, nil
}

func (s *DocumentService) Publish(ctx context.Context, orgID, documentID string) (*document.DocumentResponse, error) {
	d, err := s.getForOrg(ctx, orgID, documentID)
	if err != nil {
		return nil, err
	}
	if d.IsPublished() {
		resp := document.ToResponse(d)
		return &resp, nil
	}

	if err := s.Repository.SetPublished(ctx, documentID); err != nil {
		return nil, fmt.Errorf("failed to publish document: %w", err)
	}

	now := time.Now()
	d.PublishedAt = &now
	s.notifyPublished(ctx, d)

	resp := document.ToResponse(d)
	return &resp, nil
}

func (s *DocumentService) Delete(ctx context.Context, orgID, documentID string) error {
	d, err := s.getForOrg(ctx, orgID, documentID)
	if err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if d.FilePath != "" {
		if err := s.fileStorage.Delete(ctx, d.FilePath); err != nil {
			slog.Error("failed to remove document file", "document_id", documentID, "error", err)
		}
	}

	return nil
}

func (s *DocumentService) AttachFile(ctx context.Context, orgID, documentID, fileName, contentType string, size int64, file io.Reader) (*document.DocumentResponse, error) {
	d, err := s.getForOrg(ctx, orgID, documentID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("organizations/%s/documents/%s/%s", d.OrganizationID, d.ID, fileName)
	storedPath, err := s.fileStorage.Upload(ctx, file, path, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store document file: %w", err)
	}

	if err := s.Repository.SetFile(ctx, documentID, storedPath, fileName, contentType, size); err != nil {
		return nil, fmt.Errorf("failed to record document file: %w", err)
	}

	d.FilePath = storedPath
	d.FileName = fileName
	d.ContentType = contentType
	d.FileSize = size

	resp := document.ToResponse(d)
	return &resp, nil
}

// DownloadFile streams the attached file. Returns file name, content type
// and the reader; the caller closes it.
func (s *DocumentService) DownloadFile(ctx context.Context, orgID, documentID string, role member.Role) (string, string, io.ReadCloser, error) {
	d, err := s.getForOrg(ctx, orgID, documentID)
	if err != nil {
		return "", "", nil, err
	}
	if !d.VisibleTo(role) && !member.HasPermission(role, member.PermissionDocumentsManage) {
		return "", "", nil, document.ErrNotVisible
	}
	if d.FilePath == "" {
		return "", "", nil, document.ErrDocumentNotFound
	}

	reader, err := s.fileStorage.Download(ctx, d.FilePath)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to open document file: %w", err)
	}

	return d.FileName, d.ContentType, reader, nil
}

func (s *DocumentService) Acknowledge(ctx context.Context, orgID, documentID, userID string, role member.Role) error {
	d, err := s.getForOrg(ctx, orgID, documentID)
	if err != nil {
		return err
	}
	if !d.RequiresAck {
		return document.ErrAckNotRequired
	}
	if !d.IsPublished() {
		return document.ErrDocumentNotPublished
	}
	if !d.VisibleTo(role) {
		return document.ErrNotVisible
	}

	acked, err := s.Repository.HasAcked(ctx, documentID, userID)
	if err != nil {
		return fmt.Errorf("failed to check acknowledgment: %w", err)
	}
	if acked {
		return document.ErrAlreadyAcknowledged
	}

	if _, err := s.Repository.CreateAck(ctx, &document.Acknowledgment{
		DocumentID: documentID,
		UserID:     userID,
	}); err != nil {
		return fmt.Errorf("failed to create acknowledgment: %w", err)
	}

	return nil
}

func (s *DocumentService) ListAcknowledgments(ctx context.Context, orgID, documentID string) ([]document.AcknowledgmentResponse, error) {
	if _, err := s.getForOrg(ctx, orgID, documentID); err != nil {
		return nil, err
	}

	acks, err := s.Repository.ListAcks(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list acknowledgments: %w", err)
	}

	responses := make([]document.AcknowledgmentResponse, len(acks))
	for i, a := range acks {
		responses[i] = document.ToAckResponse(a)
	}
	return responses, nil
}

// getForOrg loads a document and hides it when it belongs to a different
// organization than the one the caller is operating in.
func (s *DocumentService) getForOrg(ctx context.Context, orgID, documentID string) (*document.Document, error) {
	d, err := s.Repository.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if d.OrganizationID != orgID {
		return nil, document.ErrDocumentNotFound
	}
	return d, nil
}

// notifyPublished fans out to every member whose role can see the document.
func (s *DocumentService) notifyPublished(ctx context.Context, d *document.Document) {
	var roles []member.Role
	for _, role := range member.ValidRoles() {
		if role.AtLeast(d.MinRole) {
			roles = append(roles, role)
		}
	}

	recipients, err := s.memberRepo.ListUserIDsByRoles(ctx, d.OrganizationID, roles)
	if err != nil {
		slog.Error("failed to resolve document recipients", "document_id", d.ID, "error", err)
		return
	}

	reqs := make([]notification.CreateNotificationRequest, 0, len(recipients))
	for _, userID := range recipients {
		if userID == d.AuthorID {
			continue
		}
		reqs = append(reqs, notification.CreateNotificationRequest{
			OrganizationID: d.OrganizationID,
			RecipientID:    userID,
			SenderID:       &d.AuthorID,
			Type:           notification.TypeDocumentPublished,
			Title:          "Document published",
			Message:        fmt.Sprintf("%q was published.", d.Title),
			Data:           map[string]interface{}{"document_id": d.ID},
		})
	}

	if err := s.notifService.QueueBulkNotification(ctx, reqs); err != nil {
		slog.Error("failed to queue document notifications", "error", err)
	}
}
