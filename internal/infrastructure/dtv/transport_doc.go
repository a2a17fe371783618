// Package dtv genera el XML del Documento de Tránsito Vegetal que acompaña a
// cada salida de fruta en ruta.
package dtv

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/frutasur/empaque-api/internal/domain/entity"
)

// Emitter datos del emisor que van en la cabecera del documento.
type Emitter struct {
	Name    string
	TaxID   string
	Address string
}

// Builder arma documentos de tránsito para salidas de fruta.
type Builder struct {
	emitter Emitter
}

// NewBuilder construye el generador con los datos del emisor.
func NewBuilder(emitter Emitter) *Builder {
	return &Builder{emitter: emitter}
}

// Build genera el XML del documento para una salida. products resuelve el
// nombre de cada producto de las líneas; containers el de cada tipo de envase.
func (b *Builder) Build(outflow *entity.SalesOutflow, client *entity.Party, products map[string]*entity.Product, containers map[string]*entity.ContainerType) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("DocumentoTransitoVegetal")
	root.CreateAttr("version", "1.0")
	root.CreateElement("Numero").SetText(outflow.Number)
	root.CreateElement("Fecha").SetText(outflow.Date.Format("2006-01-02"))

	origen := root.CreateElement("Origen")
	origen.CreateElement("RazonSocial").SetText(b.emitter.Name)
	origen.CreateElement("CUIT").SetText(b.emitter.TaxID)
	if b.emitter.Address != "" {
		origen.CreateElement("Domicilio").SetText(b.emitter.Address)
	}

	destino := root.CreateElement("Destino")
	destino.CreateElement("RazonSocial").SetText(client.Name)
	if client.TaxID != "" {
		destino.CreateElement("CUIT").SetText(client.TaxID)
	}

	detalle := root.CreateElement("Detalle")
	for _, l := range outflow.Lines {
		p, ok := products[l.ProductID]
		if !ok {
			return nil, fmt.Errorf("dtv: producto %s sin resolver", l.ProductID)
		}
		linea := detalle.CreateElement("Linea")
		linea.CreateElement("Especie").SetText(p.Name)
		if p.Variety != "" {
			linea.CreateElement("Variedad").SetText(p.Variety)
		}
		linea.CreateElement("Kilos").SetText(l.Kg.StringFixed(2))
	}

	if len(outflow.Containers) > 0 {
		envases := root.CreateElement("Envases")
		for _, c := range outflow.Containers {
			if c.FullDelta >= 0 {
				continue // solo los que salen del predio
			}
			ct, ok := containers[c.ContainerTypeID]
			if !ok {
				return nil, fmt.Errorf("dtv: envase %s sin resolver", c.ContainerTypeID)
			}
			envase := envases.CreateElement("Envase")
			envase.CreateElement("Tipo").SetText(ct.Name)
			envase.CreateElement("Unidades").SetText(fmt.Sprint(-c.FullDelta))
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
