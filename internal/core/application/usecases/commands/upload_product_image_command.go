package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/profile"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// MaxImageSize bounds uploaded product images.
const MaxImageSize = 5 << 20

var ErrUploadProductImageCommandIsNotConstructed = errors.New(
	"UploadProductImageCommand must be created via NewUploadProductImageCommand constructor",
)

func getImageExtensions() map[string]string {
	return map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
	}
}

// UploadProductImageCommand stores an image and attaches its URL to a product.
type UploadProductImageCommand struct {
	actor       profile.Actor
	productID   kernel.UUID
	contentType string
	data        []byte

	guard guard.ConstructorGuard
}

func NewUploadProductImageCommand(
	actor profile.Actor,
	productID kernel.UUID,
	contentType string,
	data []byte,
) (UploadProductImageCommand, error) {
	var problems []error
	problems = append(problems, productID.Validate())

	if _, ok := getImageExtensions()[contentType]; !ok {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("content_type",
			fmt.Errorf("%q is not an accepted image type", contentType)))
	}
	switch {
	case len(data) == 0:
		problems = append(problems, errs.NewValueIsRequiredError("file"))
	case len(data) > MaxImageSize:
		problems = append(problems, errs.NewValueIsOutOfRangeError("file_size", len(data), 1, MaxImageSize))
	}

	if err := errors.Join(problems...); err != nil {
		return UploadProductImageCommand{}, err
	}

	return UploadProductImageCommand{
		actor:       actor,
		productID:   productID,
		contentType: contentType,
		data:        data,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UploadProductImageCommand) Validate() error {
	return c.guard.Validate(ErrUploadProductImageCommandIsNotConstructed)
}

func (c UploadProductImageCommand) Actor() profile.Actor {
	return c.actor
}

func (c UploadProductImageCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c UploadProductImageCommand) ContentType() string {
	return c.contentType
}

func (c UploadProductImageCommand) Data() []byte {
	return c.data
}

// ObjectKey names a fresh object for the image so replaced images never
// collide with cached copies of the old one.
func (c UploadProductImageCommand) ObjectKey() string {
	return fmt.Sprintf("products/%s/%s%s", c.productID, kernel.NewUUID(), getImageExtensions()[c.contentType])
}
