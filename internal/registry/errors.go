package registry

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	declarationInvalidCode = "TRANSLATION_DECLARATION_INVALID"
	unknownMemberCode      = "TRANSLATION_MEMBER_UNKNOWN"
)

var (
	// ErrInvalidDeclaration indicates attribute registration failed validation.
	ErrInvalidDeclaration = errors.New("registry: invalid translated attribute declaration")
	// ErrCatalogRequired indicates Declare was called without a locale catalog.
	ErrCatalogRequired = errors.New("registry: locale catalog is required")
	// ErrUnknownAttribute indicates the attribute was not declared as translated.
	ErrUnknownAttribute = errors.New("registry: unknown translated attribute")
	// ErrUnknownMember indicates no generated member matches the name or kind.
	ErrUnknownMember = errors.New("registry: unknown translated member")
)

func wrapDeclarationError(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(errors.Join(ErrInvalidDeclaration, err), goerrors.CategoryValidation, "translated attribute declaration failed").
		WithTextCode(declarationInvalidCode)
}

func unknownMember(name string) error {
	return goerrors.Wrap(ErrUnknownMember, goerrors.CategoryValidation, "no translated member named "+name).
		WithTextCode(unknownMemberCode)
}
