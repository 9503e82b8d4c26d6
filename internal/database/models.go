package database

import (
	"time"

	"github.com/cx-tal-miterani/airline-booking/internal/models"
)

// Gorm records for the catalog tables. The schema itself is owned by the
// embedded migrations, these only map columns.

type airportRecord struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"column:name"`
	ClosestBigCity string `gorm:"column:closest_big_city"`
}

func (airportRecord) TableName() string { return "airports" }

func (r airportRecord) toModel() models.Airport {
	return models.Airport{ID: r.ID, Name: r.Name, ClosestBigCity: r.ClosestBigCity}
}

type routeRecord struct {
	ID            int64         `gorm:"primaryKey"`
	SourceID      int64         `gorm:"column:source_id"`
	DestinationID int64         `gorm:"column:destination_id"`
	Distance      int           `gorm:"column:distance"`
	Source        airportRecord `gorm:"foreignKey:SourceID"`
	Destination   airportRecord `gorm:"foreignKey:DestinationID"`
}

func (routeRecord) TableName() string { return "routes" }

func (r routeRecord) toModel() models.Route {
	return models.Route{
		ID:          r.ID,
		Source:      r.Source.toModel(),
		Destination: r.Destination.toModel(),
		Distance:    r.Distance,
	}
}

type airplaneTypeRecord struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name"`
}

func (airplaneTypeRecord) TableName() string { return "airplane_types" }

func (r airplaneTypeRecord) toModel() models.AirplaneType {
	return models.AirplaneType{ID: r.ID, Name: r.Name}
}

type airplaneRecord struct {
	ID             int64              `gorm:"primaryKey"`
	Name           string             `gorm:"column:name"`
	Rows           int                `gorm:"column:row_count"`
	SeatsInRow     int                `gorm:"column:seats_in_row"`
	AirplaneTypeID int64              `gorm:"column:airplane_type_id"`
	AirplaneType   airplaneTypeRecord `gorm:"foreignKey:AirplaneTypeID"`
}

func (airplaneRecord) TableName() string { return "airplanes" }

func (r airplaneRecord) toModel() models.Airplane {
	return models.Airplane{
		ID:           r.ID,
		Name:         r.Name,
		Rows:         r.Rows,
		SeatsInRow:   r.SeatsInRow,
		AirplaneType: r.AirplaneType.toModel(),
	}
}

type crewRecord struct {
	ID        int64  `gorm:"primaryKey"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}

func (crewRecord) TableName() string { return "crews" }

func (r crewRecord) toModel() models.Crew {
	return models.Crew{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName}
}

type userRecord struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	IsStaff      bool      `gorm:"column:is_staff"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (userRecord) TableName() string { return "users" }

func (r userRecord) toModel() models.User {
	return models.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		IsStaff:      r.IsStaff,
		CreatedAt:    r.CreatedAt,
	}
}
