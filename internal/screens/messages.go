package screens

import "strings"

// Textos visibles. Los de error empiezan siempre con "Error".
const (
	ErrorPrefix = "Error: "

	MsgLoadingPets    = "Loading pets..."
	MsgLoadingDetails = "Loading pet details..."
	MsgCreated        = "Pet added successfully!"
	MsgNoMatches      = "No matching pets found."
	MsgEnterPrice     = "Please enter a price to search."
	MsgConfirmDelete  = "Are you sure?"

	loadPetsPrefix    = "Error loading pets: "
	loadDetailsPrefix = "Error loading details: "
	updatePrefix      = "Error updating: "
	deletePrefix      = "Error deleting: "
)

// MsgNoPriceMatches nombra el tope usado en la búsqueda.
func MsgNoPriceMatches(max string) string {
	return "No pets found with price <= $" + max + "."
}

// IsError distingue mensajes de error de los informativos.
func IsError(message string) bool {
	return strings.HasPrefix(message, "Error")
}
