// Package stub implements a development stand-in for the BookHive
// marketplace API. It serves the same wire contract the real backend does,
// including the server-side stock and fulfillment semantics the seller
// client must observe but never fabricate.
package stub

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
)

// Server is the stub marketplace API server.
type Server struct {
	app  *fiber.App
	repo *Repository
	log  *zap.Logger
}

// listingDocument mirrors the client's multipart JSON part.
type listingDocument struct {
	domain.BookListing
	IsForSelling bool `json:"isForSelling"`
}

// contributionPayload mirrors the client's contribution submission.
type contributionPayload struct {
	DonationID int64 `json:"donationId"`
	Items      []struct {
		InventoryID       int64 `json:"inventoryId"`
		ContributionCount int   `json:"contributionCount"`
	} `json:"items"`
}

// NewServer creates the stub server and registers its routes.
func NewServer(repo *Repository, log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "bookhive-stub",
		DisableStartupMessage: true,
	})

	s := &Server{app: app, repo: repo, log: log}

	app.Get("/healthz", s.handleHealth)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Get("/inventory", s.handleListInventory)
	api.Get("/listings", s.handleListListings)
	api.Post("/listings/promote", s.handlePromote)
	api.Post("/listings", s.handleCreateListing)
	api.Put("/listings/:id", s.handleUpdateListing)
	api.Delete("/listings/:id", s.handleDeleteListing)
	api.Get("/donations/requests", s.handleListDonationRequests)
	api.Get("/donations/inventory", s.handleListDonationStock)
	api.Post("/donations/:id/contributions", s.handleContribute)
	api.Get("/images/:name", s.handleResolveImage)

	return s
}

// App exposes the fiber app for tests and custom listeners.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves the stub API on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	if err := s.repo.db.Ping(); err != nil {
		s.log.Error("Database health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).SendString("unhealthy: database connection failed")
	}
	return c.SendString("healthy")
}

func (s *Server) handleListInventory(c *fiber.Ctx) error {
	ownerID, err := strconv.ParseInt(c.Query("ownerId"), 10, 64)
	if err != nil {
		return badRequest(c, "ownerId is required")
	}
	kind := domain.InventoryKind(c.Query("kind", string(domain.KindRegular)))

	records, err := s.repo.ListInventory(c.Context(), ownerID, kind)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(records)
}

func (s *Server) handleListListings(c *fiber.Ctx) error {
	ownerID, err := strconv.ParseInt(c.Query("ownerId"), 10, 64)
	if err != nil {
		return badRequest(c, "ownerId is required")
	}

	listings, err := s.repo.ListListings(c.Context(), ownerID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(listings)
}

func (s *Server) handlePromote(c *fiber.Ctx) error {
	doc, coverImage, images, err := parseListingForm(c, true)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if doc.InventoryID == nil {
		return badRequest(c, "inventoryId is required")
	}
	if err := doc.BookListing.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := s.repo.Promote(c.Context(), doc.BookListing, *doc.InventoryID, coverImage, images)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleCreateListing(c *fiber.Ctx) error {
	doc, coverImage, images, err := parseListingForm(c, true)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := doc.BookListing.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	ownerID, err := strconv.ParseInt(c.Query("ownerId", "0"), 10, 64)
	if err != nil {
		return badRequest(c, "ownerId must be numeric")
	}

	created, err := s.repo.CreateListing(c.Context(), doc.BookListing, ownerID, coverImage, images)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleUpdateListing(c *fiber.Ctx) error {
	listingID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "listing id must be numeric")
	}

	doc, _, _, err := parseListingForm(c, false)
	if err != nil {
		return badRequest(c, err.Error())
	}
	doc.ID = listingID
	if err := doc.BookListing.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := s.repo.UpdateListing(c.Context(), doc.BookListing)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(updated)
}

func (s *Server) handleDeleteListing(c *fiber.Ctx) error {
	listingID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "listing id must be numeric")
	}

	if err := s.repo.DeleteListing(c.Context(), listingID); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) handleListDonationRequests(c *fiber.Ctx) error {
	requests, err := s.repo.ListDonationRequests(c.Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(requests)
}

func (s *Server) handleListDonationStock(c *fiber.Ctx) error {
	ownerID, err := strconv.ParseInt(c.Query("ownerId"), 10, 64)
	if err != nil {
		return badRequest(c, "ownerId is required")
	}
	category := c.Query("category")
	if category == "" {
		return badRequest(c, "category is required")
	}

	records, err := s.repo.ListDonationStock(c.Context(), ownerID, category)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(records)
}

func (s *Server) handleContribute(c *fiber.Ctx) error {
	donationID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return badRequest(c, "donation id must be numeric")
	}

	var payload contributionPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "malformed contribution payload")
	}

	items := make([]ContributionInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, ContributionInput{InventoryID: item.InventoryID, Count: item.ContributionCount})
	}

	if err := s.repo.ApplyContribution(c.Context(), donationID, items); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) handleResolveImage(c *fiber.Ctx) error {
	name := c.Params("name")
	return c.JSON(fiber.Map{"url": "/media/" + name})
}

// parseListingForm extracts the listing JSON document and image parts from
// a multipart submission.
func parseListingForm(c *fiber.Ctx, imagesRequired bool) (*listingDocument, string, []string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, "", nil, errors.New("multipart form is required")
	}

	docs := form.Value["listing"]
	if len(docs) != 1 {
		return nil, "", nil, errors.New("listing document is required")
	}

	var doc listingDocument
	if err := json.Unmarshal([]byte(docs[0]), &doc); err != nil {
		return nil, "", nil, errors.New("malformed listing document")
	}

	covers := form.File["coverImage"]
	gallery := form.File["images"]
	if imagesRequired {
		if len(covers) == 0 {
			return nil, "", nil, errors.New("Cover image is required")
		}
		if len(gallery) == 0 {
			return nil, "", nil, errors.New("At least one image is required")
		}
	}
	if len(gallery) > 3 {
		return nil, "", nil, errors.New("At most 3 gallery images are allowed")
	}

	coverName := ""
	if len(covers) > 0 {
		if err := drainFile(covers[0]); err != nil {
			return nil, "", nil, err
		}
		coverName = covers[0].Filename
	}

	names := make([]string, 0, len(gallery))
	for _, f := range gallery {
		if err := drainFile(f); err != nil {
			return nil, "", nil, err
		}
		names = append(names, f.Filename)
	}
	return &doc, coverName, names, nil
}

// drainFile reads an uploaded part to completion. Image bytes are not
// stored; image storage is outside the stub's scope.
func drainFile(fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(io.Discard, f)
	return err
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// fail maps repository errors onto the API's error envelope.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrOverAllocation):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrEmptyContribution):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		s.log.Error("Unhandled stub error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
