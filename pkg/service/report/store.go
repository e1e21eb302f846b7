package report

import (
	"context"
	"encoding/json"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/verteidiq/assessor/pkg/domain/interfaces"
	"github.com/verteidiq/assessor/pkg/domain/model"
	"github.com/verteidiq/assessor/pkg/domain/types"
	"google.golang.org/api/option"
)

// ErrNotCompleted is returned for assessments without a result
var ErrNotCompleted = goerr.New("assessment is not completed")

// Document is the JSON report written for a completed assessment
type Document struct {
	AssessmentID string                  `json:"assessment_id"`
	Industry     types.Industry          `json:"industry"`
	Answers      model.AnswerMap         `json:"answers"`
	Result       *model.AssessmentResult `json:"result"`
	CompletedAt  *time.Time              `json:"completed_at,omitempty"`
	GeneratedAt  time.Time               `json:"generated_at"`
}

// Encode renders the report of a completed assessment
func Encode(assessment *model.Assessment, now time.Time) ([]byte, error) {
	if assessment.Result == nil {
		return nil, goerr.Wrap(ErrNotCompleted, "cannot render report", goerr.V("assessment_id", assessment.ID))
	}

	data, err := json.MarshalIndent(&Document{
		AssessmentID: string(assessment.ID),
		Industry:     assessment.Industry,
		Answers:      assessment.Answers,
		Result:       assessment.Result,
		CompletedAt:  assessment.CompletedAt,
		GeneratedAt:  now.UTC(),
	}, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal report", goerr.V("assessment_id", assessment.ID))
	}
	return data, nil
}

// ObjectName is the object path of the report of id under prefix
func ObjectName(prefix string, id model.AssessmentID) string {
	return path.Join(prefix, string(id)+".json")
}

// Store uploads assessment reports to a Cloud Storage bucket
type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.ReportStore = &Store{}

type storeConfig struct {
	prefix        string
	clientOptions []option.ClientOption
}

// Option is a functional option for Store configuration
type Option func(*storeConfig)

// WithPrefix sets the object name prefix
func WithPrefix(prefix string) Option {
	return func(c *storeConfig) {
		c.prefix = prefix
	}
}

// WithClientOptions passes options to the storage client
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *storeConfig) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

// New creates a Store writing to bucket with application default credentials
func New(ctx context.Context, bucket string, opts ...Option) (*Store, error) {
	if bucket == "" {
		return nil, goerr.New("bucket is required")
	}

	var cfg storeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := storage.NewClient(ctx, cfg.clientOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	return &Store{
		client: client,
		bucket: bucket,
		prefix: cfg.prefix,
	}, nil
}

// PutReport uploads the report and returns its gs:// URL
func (s *Store) PutReport(ctx context.Context, assessment *model.Assessment) (string, error) {
	data, err := Encode(assessment, time.Now())
	if err != nil {
		return "", err
	}

	name := ObjectName(s.prefix, assessment.ID)
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"
	w.CacheControl = "no-cache, no-store, must-revalidate"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write report", goerr.V("bucket", s.bucket), goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to upload report", goerr.V("bucket", s.bucket), goerr.V("object", name))
	}

	return "gs://" + s.bucket + "/" + name, nil
}

// Close releases the storage client
func (s *Store) Close() error {
	return s.client.Close()
}
