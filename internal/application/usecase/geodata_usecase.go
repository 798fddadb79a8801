package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// GeodataUseCase alta y consulta de geometrías con nombre.
type GeodataUseCase struct {
	repo  repository.PolygonRepository
	codec GeometryCodec
}

// NewGeodataUseCase construye el caso de uso.
func NewGeodataUseCase(repo repository.PolygonRepository, codec GeometryCodec) *GeodataUseCase {
	return &GeodataUseCase{repo: repo, codec: codec}
}

// Create valida y convierte la geometría GeoJSON antes de persistirla; la respuesta
// vuelve a codificar lo guardado.
func (uc *GeodataUseCase) Create(ctx context.Context, in dto.CreatePolygonRequest) (*dto.PolygonResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Geometry == nil {
		return nil, domain.ErrInvalidInput
	}
	g, err := uc.codec.Decode(in.Geometry.Type, in.Geometry.Coordinates)
	if err != nil {
		return nil, err
	}
	polygon := &entity.Polygon{Name: name, Description: in.Description, Geometry: g}
	if err := uc.repo.Create(ctx, polygon); err != nil {
		return nil, err
	}
	return uc.toResponse(polygon)
}

// Get obtiene un polígono por ID.
func (uc *GeodataUseCase) Get(ctx context.Context, id int64) (*dto.PolygonResponse, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(p)
}

// List pagina con skip/limit.
func (uc *GeodataUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.PolygonResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Skip, page.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PolygonResponse, 0, len(list))
	for _, p := range list {
		r, err := uc.toResponse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

// KML exporta el polígono como documento KML con un Placemark.
func (uc *GeodataUseCase) KML(ctx context.Context, id int64) ([]byte, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.codec.KML(p)
}

func (uc *GeodataUseCase) find(ctx context.Context, id int64) (*entity.Polygon, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPolygonNotFound
	}
	return p, nil
}

func (uc *GeodataUseCase) toResponse(p *entity.Polygon) (*dto.PolygonResponse, error) {
	typ, coords, err := uc.codec.Encode(p.Geometry)
	if err != nil {
		return nil, err
	}
	return &dto.PolygonResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Geometry:    dto.GeoJSON{Type: typ, Coordinates: coords},
	}, nil
}
