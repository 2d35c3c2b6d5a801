package db

import "gorm.io/gorm"

type Repositories struct {
	Users *UserRepository
	Trips *TripRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users: NewUserRepository(database),
		Trips: NewTripRepository(database),
	}
}
