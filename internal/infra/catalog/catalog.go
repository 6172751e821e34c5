package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-CenterBooking/internal/domain"
	"github.com/m04kA/SMC-CenterBooking/pkg/geo"
)

//go:embed centers.yaml
var defaultCatalog []byte

var (
	// ErrInvalidCatalog возвращается, если файл справочника не проходит валидацию
	ErrInvalidCatalog = errors.New("catalog: invalid center catalog")
)

type centerFile struct {
	Name       string     `yaml:"name" validate:"required"`
	Coordinate *geo.Point `yaml:"coordinate,omitempty"`
	Capacity   int        `yaml:"capacity,omitempty" validate:"min=0"`
}

type talukFile struct {
	Name    string       `yaml:"name" validate:"required"`
	Centers []centerFile `yaml:"centers,omitempty" validate:"dive"`
}

type districtFile struct {
	Name   string      `yaml:"name" validate:"required"`
	Taluks []talukFile `yaml:"taluks" validate:"required,min=1,dive"`
}

type catalogFile struct {
	DefaultCenters []centerFile   `yaml:"default_centers" validate:"dive"`
	Districts      []districtFile `yaml:"districts" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Directory справочник сервисных центров: район -> талук -> центры
type Directory struct {
	districts       []string
	taluks          map[string][]string
	centers         map[string][]domain.Center // ключ district|taluk
	defaultCapacity int
}

// Load читает справочник из файла. Пустой путь означает встроенный справочник.
func Load(path string, defaultCapacity int) (*Directory, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}
	return Parse(data, defaultCapacity)
}

// Parse разбирает и валидирует YAML справочника
func Parse(data []byte, defaultCapacity int) (*Directory, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrInvalidCatalog, err)
	}
	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if defaultCapacity <= 0 {
		defaultCapacity = domain.DefaultCapacity
	}

	maxCapacity := len(domain.DefaultCatalog.Labels())

	d := &Directory{
		taluks:          make(map[string][]string),
		centers:         make(map[string][]domain.Center),
		defaultCapacity: defaultCapacity,
	}

	for _, district := range file.Districts {
		if _, dup := d.taluks[district.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate district %q", ErrInvalidCatalog, district.Name)
		}
		d.districts = append(d.districts, district.Name)
		d.taluks[district.Name] = []string{}

		for _, taluk := range district.Taluks {
			key := talukKey(district.Name, taluk.Name)
			if _, dup := d.centers[key]; dup {
				return nil, fmt.Errorf("%w: duplicate taluk %q in %q", ErrInvalidCatalog, taluk.Name, district.Name)
			}
			d.taluks[district.Name] = append(d.taluks[district.Name], taluk.Name)

			// талук без своих центров обслуживается центрами по умолчанию
			source := taluk.Centers
			if len(source) == 0 {
				source = file.DefaultCenters
			}

			centers := make([]domain.Center, 0, len(source))
			seen := make(map[string]struct{}, len(source))
			for _, c := range source {
				if _, dup := seen[c.Name]; dup {
					return nil, fmt.Errorf("%w: duplicate center %q in %s/%s", ErrInvalidCatalog, c.Name, district.Name, taluk.Name)
				}
				seen[c.Name] = struct{}{}

				// больше слотов, чем в каталоге, занять невозможно
				if c.Capacity > maxCapacity {
					return nil, fmt.Errorf("%w: center %q capacity %d exceeds %d catalog slots",
						ErrInvalidCatalog, c.Name, c.Capacity, maxCapacity)
				}

				if c.Coordinate != nil && !c.Coordinate.Valid() {
					return nil, fmt.Errorf("%w: center %q has coordinates out of range", ErrInvalidCatalog, c.Name)
				}

				centers = append(centers, domain.Center{
					Location: domain.Location{
						District: district.Name,
						Taluk:    taluk.Name,
						Center:   c.Name,
					},
					Coordinate: copyPoint(c.Coordinate),
					Capacity:   c.Capacity,
				})
			}
			d.centers[key] = centers
		}
	}

	return d, nil
}

func talukKey(district, taluk string) string {
	return district + "|" + taluk
}

func copyPoint(p *geo.Point) *geo.Point {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// Districts возвращает районы в порядке справочника
func (d *Directory) Districts() []string {
	return append([]string(nil), d.districts...)
}

// Taluks возвращает талуки района; nil для неизвестного района
func (d *Directory) Taluks(district string) []string {
	taluks, ok := d.taluks[district]
	if !ok {
		return nil
	}
	return append([]string(nil), taluks...)
}

// Centers возвращает центры талука в порядке справочника.
// Пустой taluk означает все центры района.
func (d *Directory) Centers(district, taluk string) []domain.Center {
	if taluk != "" {
		return cloneCenters(d.centers[talukKey(district, taluk)])
	}

	var out []domain.Center
	for _, t := range d.taluks[district] {
		out = append(out, cloneCenters(d.centers[talukKey(district, t)])...)
	}
	return out
}

// Center ищет центр по полному адресу
func (d *Directory) Center(loc domain.Location) (domain.Center, bool) {
	for _, c := range d.centers[talukKey(loc.District, loc.Taluk)] {
		if c.Center == loc.Center {
			return cloneCenters([]domain.Center{c})[0], true
		}
	}
	return domain.Center{}, false
}

// Capacity дневная вместимость центра. Центры вне справочника получают значение по умолчанию.
func (d *Directory) Capacity(loc domain.Location) int {
	if c, ok := d.Center(loc); ok && c.Capacity > 0 {
		return c.Capacity
	}
	return d.defaultCapacity
}

func cloneCenters(in []domain.Center) []domain.Center {
	if in == nil {
		return nil
	}
	out := make([]domain.Center, len(in))
	for i, c := range in {
		out[i] = c
		out[i].Coordinate = copyPoint(c.Coordinate)
	}
	return out
}
