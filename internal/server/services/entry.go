package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jourin/internal/journal"
	"github.com/dmitrijs2005/jourin/internal/prompt"
	sc "github.com/dmitrijs2005/jourin/internal/server/config"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jourin/internal/weekly"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 seams, swapped in tests.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) error {
		_, err := c.PutObject(ctx, in)
		return err
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Export is a finished history export.
type Export struct {
	Key string
	URL string
}

// EntryService is the remote entry store: user-scoped history, single
// appends, exports to object storage and the weekly prompt.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewEntryService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: repomanager,
		config:      config,
		now:         time.Now,
	}
}

// List returns the user's entries, newest first.
func (s *EntryService) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	entries, err := s.repomanager.Entries(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return entries, nil
}

// Create appends e for userID. Entries without any non-blank answer are
// rejected with a journal validation error; a zero CreatedAt is set to now.
func (s *EntryService) Create(ctx context.Context, userID string, e *models.Entry) (*models.Entry, error) {
	if e.Journal().IsBlank() {
		return nil, journal.ErrNoContent()
	}

	stored := *e
	stored.ID = ""
	stored.UserID = userID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now().UTC()
	}

	if err := s.repomanager.Entries(s.db).Create(ctx, &stored); err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}
	return &stored, nil
}

// Weekly renders the weekly prompt for the week containing at, or returns
// weekly.NoEntries when that week is empty.
func (s *EntryService) Weekly(ctx context.Context, userID string, at time.Time) (string, error) {
	stored, err := s.List(ctx, userID)
	if err != nil {
		return "", err
	}

	entries := make([]journal.Entry, 0, len(stored))
	for _, m := range stored {
		entries = append(entries, m.Journal())
	}

	summary := weekly.Summarize(entries, journal.DefaultTitles(), weekly.StartOfWeek(at), weekly.EndOfWeek(at))
	if summary == weekly.NoEntries {
		return summary, nil
	}
	return prompt.RenderWeekly(prompt.WeeklyTemplate, summary), nil
}

// ExportKey builds the object key for a new export of userID's history.
func ExportKey(userID string, at time.Time) string {
	return fmt.Sprintf("exports/%s/%s/%v.json", userID, at.UTC().Format("2006/01/02"), uuid.New())
}

// Export uploads the user's full history as a JSON array and returns a
// presigned download link valid for config.ExportLinkValidity.
func (s *EntryService) Export(ctx context.Context, userID string) (*Export, error) {
	stored, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]journal.Entry, 0, len(stored))
	for _, m := range stored {
		entries = append(entries, m.Journal())
	}
	body, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding export: %w", err)
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := ExportKey(userID, s.now())

	if err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.ExportLinkValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	return &Export{Key: key, URL: req.URL}, nil
}

func (s *EntryService) s3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}
