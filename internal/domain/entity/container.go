package entity

import "time"

// ContainerType representa un tipo de envase retornable (bins, cajones, pallets).
type ContainerType struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// ContainerStock stock propio de envases de un tipo, separado en vacíos y llenos.
type ContainerStock struct {
	ContainerTypeID string
	EmptyUnits      int
	FullUnits       int
	UpdatedAt       time.Time
}

// ContainerDebt contador firmado de envases adeudados por una parte.
// Positivo = la parte nos debe envases; negativo = le debemos nosotros.
type ContainerDebt struct {
	PartyID         string
	ContainerTypeID string
	Units           int
	UpdatedAt       time.Time
}

// ContainerMove delta de envases declarado en una línea de documento.
// FullDelta/EmptyDelta afectan el stock propio; DebtDelta la deuda de la parte.
type ContainerMove struct {
	ContainerTypeID string
	FullDelta       int
	EmptyDelta      int
	DebtDelta       int
}
