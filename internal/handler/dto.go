package handler

import "github.com/msomdec/kennel/internal/domain"

// DogDTO is the JSON shape of a dog.
type DogDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Breed string `json:"breed"`
}

func toDogDTO(d *domain.Dog) DogDTO {
	return DogDTO{ID: d.ID, Name: d.Name, Breed: d.Breed}
}

func toDogDTOs(dogs []domain.Dog) []DogDTO {
	out := make([]DogDTO, 0, len(dogs))
	for i := range dogs {
		out = append(out, toDogDTO(&dogs[i]))
	}
	return out
}

// dogRequest is the body of create, find-or-create and update requests.
type dogRequest struct {
	Name  string `json:"name"`
	Breed string `json:"breed"`
}
