package document

import (
	"context"
	"io"

	"github.com/versecrew/versecrew-backend-go/internal/domain/member"
)

// By-id operations carry the organization id from the URL scope; a document
// owned by a different organization is reported as not found.
type Service interface {
	Create(ctx context.Context, orgID, authorID string, req *CreateDocumentRequest) (*DocumentResponse, error)
	Get(ctx context.Context, orgID, documentID, userID string, role member.Role) (*DocumentResponse, error)
	List(ctx context.Context, orgID, userID string, filter ListDocumentsFilter) (*ListDocumentsResponse, error)
	Update(ctx context.Context, orgID, documentID string, req *UpdateDocumentRequest) (*DocumentResponse, error)
	Publish(ctx context.Context, orgID, documentID string) (*DocumentResponse, error)
	Delete(ctx context.Context, orgID, documentID string) error

	// AttachFile stores an uploaded file for the document and records
	// its metadata.
	AttachFile(ctx context.Context, orgID, documentID, fileName, contentType string, size int64, file io.Reader) (*DocumentResponse, error)
	// DownloadFile streams the document's attached file.
	DownloadFile(ctx context.Context, orgID, documentID string, role member.Role) (string, string, io.ReadCloser, error)

	Acknowledge(ctx context.Context, orgID, documentID, userID string, role member.Role) error
	ListAcknowledgments(ctx context.Context, orgID, documentID string) ([]AcknowledgmentResponse, error)
}
