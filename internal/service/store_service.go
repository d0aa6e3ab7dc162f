package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"otica-store/internal/catalog"
	"otica-store/internal/domain"
	"otica-store/internal/fault"
)

// DefaultNearestRadiusKm bounds nearest-store lookups when the caller gives
// no radius.
const DefaultNearestRadiusKm = 50.0

// StoreService exposes the shop-unit operations.
type StoreService struct {
	stores   catalog.StoreRepository
	injector *fault.Injector
	profile  fault.Profile
	logger   *zap.Logger
	now      func() time.Time
}

// NewStoreService creates a StoreService.
func NewStoreService(stores catalog.StoreRepository, injector *fault.Injector, profile fault.Profile, logger *zap.Logger) *StoreService {
	return &StoreService{
		stores:   stores,
		injector: injector,
		profile:  profile,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns all active stores.
func (s *StoreService) List(ctx context.Context) (domain.Response[[]domain.Store], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar informações das lojas. Tente novamente."); err != nil {
		return domain.Response[[]domain.Store]{}, err
	}

	stores, err := s.stores.All(ctx)
	if err != nil {
		return domain.Response[[]domain.Store]{}, err
	}

	active := make([]domain.Store, 0, len(stores))
	for _, st := range stores {
		if st.IsActive {
			active = append(active, st)
		}
	}

	return domain.OK(active), nil
}

// Get retrieves one store. An inactive store is reported as temporarily
// unavailable.
func (s *StoreService) Get(ctx context.Context, id string) (domain.Response[domain.Store], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar informações da loja."); err != nil {
		return domain.Response[domain.Store]{}, err
	}

	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		if err == catalog.ErrStoreNotFound {
			return domain.Fail[domain.Store]("Loja não encontrada"), nil
		}
		return domain.Response[domain.Store]{}, err
	}
	if !store.IsActive {
		return domain.Fail[domain.Store]("Loja temporariamente indisponível"), nil
	}

	return domain.OK(*store), nil
}

// ByCity returns active stores in the given city, compared
// case-insensitively.
func (s *StoreService) ByCity(ctx context.Context, city string) (domain.Response[[]domain.Store], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao buscar lojas na cidade especificada."); err != nil {
		return domain.Response[[]domain.Store]{}, err
	}

	stores, err := s.stores.All(ctx)
	if err != nil {
		return domain.Response[[]domain.Store]{}, err
	}

	matched := make([]domain.Store, 0, len(stores))
	for _, st := range stores {
		if st.IsActive && strings.EqualFold(st.City, city) {
			matched = append(matched, st)
		}
	}

	return domain.OK(matched), nil
}

// ByNeighborhood returns active stores whose neighborhood contains the given
// term.
func (s *StoreService) ByNeighborhood(ctx context.Context, neighborhood string) (domain.Response[[]domain.Store], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao buscar lojas no bairro especificado."); err != nil {
		return domain.Response[[]domain.Store]{}, err
	}

	stores, err := s.stores.All(ctx)
	if err != nil {
		return domain.Response[[]domain.Store]{}, err
	}

	term := strings.ToLower(neighborhood)
	matched := make([]domain.Store, 0, len(stores))
	for _, st := range stores {
		if st.IsActive && strings.Contains(strings.ToLower(st.Neighborhood), term) {
			matched = append(matched, st)
		}
	}

	return domain.OK(matched), nil
}

// Nearest returns active stores within radiusKm of the given point, closest
// first. Stores without coordinates are skipped.
func (s *StoreService) Nearest(ctx context.Context, lat, lng, radiusKm float64) (domain.Response[[]domain.StoreDistance], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao buscar lojas próximas."); err != nil {
		return domain.Response[[]domain.StoreDistance]{}, err
	}

	if radiusKm <= 0 {
		radiusKm = DefaultNearestRadiusKm
	}

	stores, err := s.stores.All(ctx)
	if err != nil {
		return domain.Response[[]domain.StoreDistance]{}, err
	}

	nearby := make([]domain.StoreDistance, 0, len(stores))
	for _, st := range stores {
		if !st.IsActive || st.Coordinates == nil {
			continue
		}
		d := haversineKm(lat, lng, st.Coordinates.Lat, st.Coordinates.Lng)
		if d <= radiusKm {
			nearby = append(nearby, domain.StoreDistance{Store: st, Distance: d})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].Distance < nearby[j].Distance
	})

	return domain.OK(nearby), nil
}

// Hours reports a store's published opening hours and whether it is open at
// the moment of the call: weekdays 8-18, Saturday 8-14, closed Sunday.
func (s *StoreService) Hours(ctx context.Context, id string) (domain.Response[domain.StoreHours], error) {
	if err := s.injector.Inject(ctx, s.profile, "Erro ao carregar horários da loja."); err != nil {
		return domain.Response[domain.StoreHours]{}, err
	}

	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		if err == catalog.ErrStoreNotFound {
			return domain.Fail[domain.StoreHours]("Loja não encontrada"), nil
		}
		return domain.Response[domain.StoreHours]{}, err
	}

	now := s.now()
	hour := now.Hour()
	var isOpen bool
	switch now.Weekday() {
	case time.Saturday:
		isOpen = hour >= 8 && hour < 14
	case time.Sunday:
		isOpen = false
	default:
		isOpen = hour >= 8 && hour < 18
	}

	hours := store.OpeningHours
	if hours == "" {
		hours = "Horário não informado"
	}

	return domain.OK(domain.StoreHours{
		StoreID: store.ID,
		Hours:   hours,
		IsOpen:  isOpen,
	}), nil
}

// haversineKm is the great-circle distance between two points in kilometers.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371

	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
