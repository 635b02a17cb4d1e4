package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

type UploadProductImageCommandHandler struct {
	uowFactory CatalogUoWFactory
	storage    ports.ObjectStorage
	policy     services.AccessPolicy
	clock      kernel.Clock
}

func NewUploadProductImageCommandHandler(
	uowFactory CatalogUoWFactory,
	storage ports.ObjectStorage,
	policy services.AccessPolicy,
	clock kernel.Clock,
) UploadProductImageCommandHandler {
	return UploadProductImageCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
		policy:     policy,
		clock:      clock,
	}
}

// Handle returns the public URL of the stored image.
func (h UploadProductImageCommandHandler) Handle(ctx context.Context, cmd UploadProductImageCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	if err := h.policy.Precheck(cmd.Actor(), services.ManageProduct); err != nil {
		return "", err
	}

	var imageURL string
	err := changeProduct(ctx, h.uowFactory, h.policy, cmd.Actor(), cmd.ProductID(), func(p *product.Product) error {
		url, err := h.storage.Put(ctx, cmd.ObjectKey(), cmd.Data(), cmd.ContentType())
		if err != nil {
			return err
		}
		imageURL = url
		return p.SetImageURL(url, h.clock.Now())
	})
	if err != nil {
		return "", err
	}

	return imageURL, nil
}
