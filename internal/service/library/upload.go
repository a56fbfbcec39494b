package library

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/FlamingoLogic/chat-markdown-app/internal/config"
	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"
	"github.com/FlamingoLogic/chat-markdown-app/internal/service/library/converter"
	"github.com/FlamingoLogic/chat-markdown-app/internal/utils"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultImportPattern matches markdown files at any depth
const DefaultImportPattern = "**/*.{md,markdown}"

// uploadService turns files into documents through the tree manager
type uploadService struct {
	tree       libSvc.TreeManager
	converters *converter.ConverterRegistry
	logger     *slog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(
	tree libSvc.TreeManager,
	converters *converter.ConverterRegistry,
	logger *slog.Logger,
) libSvc.UploadService {
	return &uploadService{
		tree:       tree,
		converters: converters,
		logger:     logger,
	}
}

// Upload converts one file and creates a document from it. The title comes
// from frontmatter when present, else from the file name. Uploads are drafts
// unless frontmatter sets a status.
func (s *uploadService) Upload(ctx context.Context, req *libSvc.UploadRequest) (*libSvc.UploadResult, error) {
	return s.upload(ctx, req, models.StatusDraft)
}

func (s *uploadService) upload(ctx context.Context, req *libSvc.UploadRequest, defaultStatus models.DocumentStatus) (*libSvc.UploadResult, error) {
	if strings.TrimSpace(req.Filename) == "" {
		return nil, &domain.ValidationError{Message: "file name is required"}
	}
	if s.converters.Lookup(req.Filename) == nil {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("unsupported file type %q (supported: %s)",
				path.Ext(req.Filename), strings.Join(s.SupportedExtensions(), ", ")),
		}
	}

	content, err := io.ReadAll(io.LimitReader(req.Content, config.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(content) > config.MaxUploadSize {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("file exceeds the %d MB upload limit", config.MaxUploadSize>>20),
		}
	}

	markdown, converterName, err := s.converters.Convert(ctx, req.Filename, content)
	if err != nil {
		return nil, err
	}

	fm, body, err := utils.SplitFrontmatter([]byte(markdown))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	title := utils.TitleFromFilename(req.Filename)
	status := defaultStatus
	var categoryID *string
	if fm != nil {
		if fm.Title != "" {
			title = fm.Title
		}
		if fm.Category != "" {
			c := fm.Category
			categoryID = &c
		}
		if fm.Status != "" {
			parsed, err := models.ParseStatus(fm.Status)
			if err != nil {
				return nil, fmt.Errorf("%w: frontmatter: %v", domain.ErrValidation, err)
			}
			status = parsed
		}
	}
	if req.CategoryID != nil {
		categoryID = req.CategoryID
	}
	if title == "" {
		title = "Untitled"
	}

	doc, err := s.tree.CreateDocument(ctx, &libSvc.CreateDocumentRequest{
		Title:      title,
		Content:    body,
		FolderID:   req.FolderID,
		CategoryID: categoryID,
		Status:     status,
		Source:     converterName,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file uploaded",
		"filename", req.Filename,
		"document_id", doc.ID,
		"converter", converterName,
		"size", len(content),
	)

	return &libSvc.UploadResult{
		DocumentID: doc.ID,
		Title:      doc.Title,
		FolderID:   doc.FolderID,
		Converter:  converterName,
		Size:       doc.Size,
	}, nil
}

// ImportDirectory uploads every file under req.Dir matching req.Pattern.
// Sub-directories become folders below req.FolderID, reusing folders that
// already exist with the same name. One bad file does not stop the import.
func (s *uploadService) ImportDirectory(ctx context.Context, req *libSvc.ImportRequest) (*libSvc.ImportResult, error) {
	info, err := os.Stat(req.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !info.IsDir() {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("%s is not a directory", req.Dir)}
	}
	return s.importFS(ctx, os.DirFS(req.Dir), req)
}

func (s *uploadService) importFS(ctx context.Context, fsys fs.FS, req *libSvc.ImportRequest) (*libSvc.ImportResult, error) {
	pattern := req.Pattern
	if pattern == "" {
		pattern = DefaultImportPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid glob pattern %q", pattern)}
	}

	baseID := req.FolderID
	if baseID == "" {
		baseID = models.RootFolderID
	}
	if !s.tree.FolderExists(baseID) {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("folder %q not found", baseID)}
	}

	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	status := models.StatusDraft
	if req.Publish {
		status = models.StatusPublished
	}

	result := &libSvc.ImportResult{
		Documents: []libSvc.UploadResult{},
		Errors:    []libSvc.ImportError{},
	}
	folders := map[string]string{".": baseID} // relative dir -> folder id

	for _, match := range matches {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		folderID, err := s.ensureFolderPath(ctx, folders, path.Dir(match), result)
		if err != nil {
			result.Errors = append(result.Errors, libSvc.ImportError{File: match, Error: err.Error()})
			s.logger.Warn("failed to create import folder", "file", match, "error", err)
			continue
		}

		uploaded, err := s.importFile(ctx, fsys, match, folderID, status)
		if err != nil {
			result.Errors = append(result.Errors, libSvc.ImportError{File: match, Error: err.Error()})
			s.logger.Warn("failed to import file", "file", match, "error", err)
			continue
		}
		result.Documents = append(result.Documents, *uploaded)
	}

	s.logger.Info("directory imported",
		"pattern", pattern,
		"matched", len(matches),
		"imported", len(result.Documents),
		"failed", len(result.Errors),
		"folders_created", result.FoldersCreated,
	)
	return result, nil
}

func (s *uploadService) importFile(ctx context.Context, fsys fs.FS, name, folderID string, status models.DocumentStatus) (*libSvc.UploadResult, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return s.upload(ctx, &libSvc.UploadRequest{
		Filename: path.Base(name),
		Content:  f,
		FolderID: folderID,
	}, status)
}

// ensureFolderPath returns the folder id for a relative directory, creating
// missing folders one segment at a time.
func (s *uploadService) ensureFolderPath(ctx context.Context, cache map[string]string, dir string, result *libSvc.ImportResult) (string, error) {
	if id, ok := cache[dir]; ok {
		return id, nil
	}

	parentID, err := s.ensureFolderPath(ctx, cache, path.Dir(dir), result)
	if err != nil {
		return "", err
	}

	name := path.Base(dir)
	for _, child := range s.tree.ListChildren(parentID) {
		if child.Name == name {
			cache[dir] = child.ID
			return child.ID, nil
		}
	}

	folder, err := s.tree.CreateFolder(ctx, &libSvc.CreateFolderRequest{Name: name, ParentID: parentID})
	if err != nil {
		return "", err
	}
	result.FoldersCreated++
	cache[dir] = folder.ID
	return folder.ID, nil
}

// SupportedExtensions lists the extensions Upload accepts
func (s *uploadService) SupportedExtensions() []string {
	return s.converters.SupportedExtensions()
}
