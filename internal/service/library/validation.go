package library

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/FlamingoLogic/chat-markdown-app/internal/config"
	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	models "github.com/FlamingoLogic/chat-markdown-app/internal/domain/models/library"
	libSvc "github.com/FlamingoLogic/chat-markdown-app/internal/domain/services/library"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	noSlashes     = validation.Match(regexp.MustCompile(`^[^/]+$`)).Error("folder name cannot contain slashes")
	documentIDFmt = validation.Match(regexp.MustCompile(`^[A-Za-z0-9._-]+$`)).Error("id may only contain letters, digits, dot, dash and underscore")
)

func folderNameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
		noSlashes,
	}
}

func titleRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(1, config.MaxDocumentTitleLength),
	}
}

// validateFolderName checks an already trimmed folder name
func validateFolderName(name string) error {
	if err := validation.Validate(name, folderNameRules()...); err != nil {
		return fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
	}
	return nil
}

// validateCreateFolderRequest trims the name in place and validates it
func validateCreateFolderRequest(req *libSvc.CreateFolderRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, folderNameRules()...),
	); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// validateCreateDocumentRequest trims the title in place and validates the request
func validateCreateDocumentRequest(req *libSvc.CreateDocumentRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.ID = strings.TrimSpace(req.ID)
	err := validation.ValidateStruct(req,
		validation.Field(&req.ID, validation.Length(0, config.MaxDocumentIDLength), documentIDFmt),
		validation.Field(&req.Title, titleRules()...),
		validation.Field(&req.Status, validation.By(validStatus)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// validateUpdateDocumentRequest checks that something changes and that the
// changed fields are well formed
func validateUpdateDocumentRequest(req *libSvc.UpdateDocumentRequest) error {
	if req.Title == nil && req.Content == nil && req.Status == nil && !req.CategoryID.Present {
		return fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	var rules []*validation.FieldRules
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
		rules = append(rules, validation.Field(&req.Title, titleRules()...))
	}
	if req.Status != nil {
		rules = append(rules, validation.Field(&req.Status, validation.By(func(v interface{}) error {
			s, _ := v.(*string)
			if s == nil {
				return nil
			}
			_, err := models.ParseStatus(*s)
			return err
		})))
	}
	if err := validation.ValidateStruct(req, rules...); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func validStatus(v interface{}) error {
	s, _ := v.(models.DocumentStatus)
	if s == "" || s.Valid() {
		return nil
	}
	return fmt.Errorf("must be draft, published or archived")
}
