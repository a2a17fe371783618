package dtv_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frutasur/empaque-api/internal/domain/entity"
	"github.com/frutasur/empaque-api/internal/infrastructure/dtv"
)

func TestBuild(t *testing.T) {
	builder := dtv.NewBuilder(dtv.Emitter{Name: "Empaque Frutasur SRL", TaxID: "30-11222333-4"})

	apple := &entity.Product{ID: "p1", Name: "Manzana", Variety: "Fuji"}
	bin := &entity.ContainerType{ID: "c1", Name: "Bins"}
	client := &entity.Party{Type: entity.PartyTypeClient, Name: "Mercado Central", TaxID: "30-55666777-8"}
	outflow := &entity.SalesOutflow{
		Number: "S-0042",
		Date:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Lines: []entity.OutflowLine{
			{ProductID: "p1", Kg: decimal.NewFromInt(300)},
		},
		Containers: []entity.ContainerMove{
			{ContainerTypeID: "c1", FullDelta: -12, DebtDelta: 12},
		},
	}

	out, err := builder.Build(outflow, client,
		map[string]*entity.Product{"p1": apple},
		map[string]*entity.ContainerType{"c1": bin})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("DocumentoTransitoVegetal")
	require.NotNil(t, root)
	assert.Equal(t, "S-0042", root.SelectElement("Numero").Text())
	assert.Equal(t, "2026-08-15", root.SelectElement("Fecha").Text())
	assert.Equal(t, "Mercado Central", root.FindElement("Destino/RazonSocial").Text())

	lineas := root.FindElements("Detalle/Linea")
	require.Len(t, lineas, 1)
	assert.Equal(t, "Manzana", lineas[0].SelectElement("Especie").Text())
	assert.Equal(t, "300.00", lineas[0].SelectElement("Kilos").Text())

	envases := root.FindElements("Envases/Envase")
	require.Len(t, envases, 1)
	assert.Equal(t, "Bins", envases[0].SelectElement("Tipo").Text())
	assert.Equal(t, "12", envases[0].SelectElement("Unidades").Text())
}

func TestBuild_ProductoSinResolver(t *testing.T) {
	builder := dtv.NewBuilder(dtv.Emitter{Name: "Empaque Frutasur SRL"})
	outflow := &entity.SalesOutflow{
		Lines: []entity.OutflowLine{{ProductID: "desconocido", Kg: decimal.NewFromInt(1)}},
	}
	_, err := builder.Build(outflow, &entity.Party{Name: "X"}, map[string]*entity.Product{}, nil)
	assert.Error(t, err)
}
