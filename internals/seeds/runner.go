package seeds

import (
	database "iglesiamqv_backend/internals/databases"
	users "iglesiamqv_backend/internals/seeds/users"
)

func RunAllSeeds(store *database.Store) {
	//* Usuarios
	users.SeedAdminUser(store)
}
