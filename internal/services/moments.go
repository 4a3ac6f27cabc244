package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/geo"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/query"
	"github.com/dmitrijs2005/baconnect/internal/seed"
	"github.com/dmitrijs2005/baconnect/internal/timex"
)

// ImageStore keeps image files outside the record store.
type ImageStore interface {
	Enabled() bool
	Upload(ctx context.Context, path string) (string, error)
	PresignGet(ctx context.Context, uri string) (string, error)
}

type MomentService struct {
	q       *query.Queries
	seeds   *seed.Set
	locator geo.Locator
	images  ImageStore
	log     logging.Logger
	now     func() time.Time
}

// NewMomentService wires the moment operations. locator and images may be
// nil: moments are then labelled with the default location and image
// references are stored verbatim.
func NewMomentService(q *query.Queries, seeds *seed.Set, locator geo.Locator, images ImageStore, log logging.Logger) *MomentService {
	return &MomentService{
		q:       q,
		seeds:   seeds,
		locator: locator,
		images:  images,
		log:     log.With("module", "moments"),
		now:     time.Now,
	}
}

func isLocalPath(ref string) bool {
	return !strings.Contains(ref, "://")
}

// storeImage uploads a local file when object storage is configured and
// returns the reference to persist.
func (s *MomentService) storeImage(ctx context.Context, ref string) (string, error) {
	if s.images == nil || !s.images.Enabled() || !isLocalPath(ref) {
		return ref, nil
	}
	uri, err := s.images.Upload(ctx, ref)
	if err != nil {
		return "", err
	}
	s.log.Debug(ctx, "image uploaded", "path", ref, "uri", uri)
	return uri, nil
}

func (s *MomentService) currentLocation(ctx context.Context) string {
	if s.locator == nil {
		return geo.Label(models.GeoPoint{}, false)
	}
	return geo.Label(s.locator.Current(ctx))
}

// Add stores a new moment dated now at the current location.
func (s *MomentService) Add(ctx context.Context, imageRef, description string) (*models.Moment, error) {
	imageRef = strings.TrimSpace(imageRef)
	description = strings.TrimSpace(description)
	if imageRef == "" || description == "" {
		return nil, common.ErrRequiredFieldsMissing
	}

	uri, err := s.storeImage(ctx, imageRef)
	if err != nil {
		return nil, err
	}

	m, err := s.q.InsertMoment(ctx, &models.Moment{
		ImageURI:    uri,
		Description: description,
		Date:        timex.Millis(s.now()),
		Location:    s.currentLocation(ctx),
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "moment added", "id", m.ID, "location", m.Location)
	return m, nil
}

// Get returns a stored or seed moment, or common.ErrorNotFound.
func (s *MomentService) Get(ctx context.Context, id int64) (*models.Moment, error) {
	if models.IsSeedID(id) {
		m, ok := s.seeds.FindByID(id)
		if !ok {
			return nil, common.ErrorNotFound
		}
		return &m, nil
	}

	m, err := s.q.GetMoment(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

// Watch emits the moment with id as it changes; nil while it does not
// exist. Seed moments emit once.
func (s *MomentService) Watch(ctx context.Context, id int64) <-chan *models.Moment {
	if !models.IsSeedID(id) {
		return s.q.Moment(ctx, id)
	}

	out := make(chan *models.Moment, 1)
	if m, ok := s.seeds.FindByID(id); ok {
		out <- &m
	} else {
		out <- nil
	}
	close(out)
	return out
}

// Edit replaces description (trimmed) and location of a stored moment.
func (s *MomentService) Edit(ctx context.Context, id int64, description, location string) error {
	m, err := s.stored(ctx, id)
	if err != nil {
		return err
	}
	m.Description = strings.TrimSpace(description)
	m.Location = location
	return s.q.UpdateMoment(ctx, m)
}

func (s *MomentService) ReplaceImage(ctx context.Context, id int64, imageRef string) error {
	imageRef = strings.TrimSpace(imageRef)
	if imageRef == "" {
		return common.ErrRequiredFieldsMissing
	}
	m, err := s.stored(ctx, id)
	if err != nil {
		return err
	}
	uri, err := s.storeImage(ctx, imageRef)
	if err != nil {
		return err
	}
	m.ImageURI = uri
	return s.q.UpdateMoment(ctx, m)
}

func (s *MomentService) Delete(ctx context.Context, id int64) error {
	if err := s.q.DeleteMoment(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "moment deleted", "id", id)
	return nil
}

// ImageURL returns a fetchable URL for m's image: a presigned URL for
// images in object storage, the stored reference otherwise.
func (s *MomentService) ImageURL(ctx context.Context, m models.Moment) string {
	if s.images == nil || !s.images.Enabled() {
		return m.ImageURI
	}
	url, err := s.images.PresignGet(ctx, m.ImageURI)
	if err != nil {
		return m.ImageURI
	}
	return url
}

func (s *MomentService) stored(ctx context.Context, id int64) (*models.Moment, error) {
	if models.IsSeedID(id) {
		return nil, common.ErrSeedReadOnly
	}
	m, err := s.q.GetMoment(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, common.ErrorNotFound
	}
	return m, nil
}
