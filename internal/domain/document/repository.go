package document

import "context"

type Repository interface {
	Create(ctx context.Context, d *Document) (*Document, error)
	GetByID(ctx context.Context, id string) (*Document, error)
	ListByOrganization(ctx context.Context, orgID string, filter ListDocumentsFilter) ([]*Document, int, error)
	Update(ctx context.Context, d *Document) (*Document, error)
	SetPublished(ctx context.Context, id string) error
	SetFile(ctx context.Context, id, filePath, fileName, contentType string, fileSize int64) error
	Delete(ctx context.Context, id string) error

	CreateAck(ctx context.Context, a *Acknowledgment) (*Acknowledgment, error)
	HasAcked(ctx context.Context, documentID, userID string) (bool, error)
	ListAcks(ctx context.Context, documentID string) ([]*Acknowledgment, error)
	// AckedDocumentIDs returns which of the given document ids the user
	// has acknowledged, for list views.
	AckedDocumentIDs(ctx context.Context, userID string, documentIDs []string) (map[string]bool, error)
}
