// Package nfe extrae cabecera y líneas de una NFe (nota fiscal electrónica
// brasileña, namespace portalfiscal) hacia la forma de entrada del receptor de
// notas de compra. Solo parsea: no resuelve entidades ni muta stock.
package nfe

import (
	"time"

	"github.com/beevik/etree"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Namespace oficial de la NFe.
const Namespace = "http://www.portalfiscal.inf.br/nfe"

// Document datos extraídos del XML, aún sin resolver contra el catálogo.
type Document struct {
	Number        string
	IssueDate     time.Time
	SupplierTaxID string // CNPJ del emisor
	SupplierName  string
	Lines         []Line
}

// Line línea de producto de la NFe (det/prod).
type Line struct {
	ProductCode string // cProd: código del producto en el proveedor
	ProductName string // xProd
	Quantity    int64  // qCom truncado a entero
	UnitCost    decimal.Decimal
}

// Parser parsea documentos NFe. En modo estricto un numérico ilegible aborta
// con ErrMalformedDocument; en modo leniente queda en cero (comportamiento
// heredado del importador original).
type Parser struct {
	strict bool
}

// NewParser construye el parser. strict controla el tratamiento de numéricos
// ilegibles (qCom/vUnCom).
func NewParser(strict bool) *Parser {
	return &Parser{strict: strict}
}

// Parse lee el XML y devuelve el Document. Falla con ErrMalformedDocument si
// el XML no se puede leer o no contiene el nodo infNFe; cualquier ausencia
// estructural se detecta aquí, antes de abrir transacción alguna.
func (p *Parser) Parse(raw []byte, now time.Time) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, domain.ErrMalformedDocument
	}
	infNFe := doc.FindElement("//infNFe")
	if infNFe == nil {
		return nil, domain.ErrMalformedDocument
	}

	out := &Document{
		Number:    "S/N",
		IssueDate: now,
	}

	// Cabecera: número y fecha de emisión (con fallback a la hora actual)
	if ide := infNFe.SelectElement("ide"); ide != nil {
		if nNF := childText(ide, "nNF"); nNF != "" {
			out.Number = nNF
		}
		if dhEmi := childText(ide, "dhEmi"); dhEmi != "" {
			if ts, err := time.Parse(time.RFC3339, dhEmi); err == nil {
				out.IssueDate = ts
			}
		}
	}

	// Emisor (proveedor)
	out.SupplierName = "Fornecedor Desconhecido"
	if emit := infNFe.SelectElement("emit"); emit != nil {
		out.SupplierTaxID = childText(emit, "CNPJ")
		if name := childText(emit, "xNome"); name != "" {
			out.SupplierName = name
		}
	}

	// Líneas det/prod
	for _, det := range infNFe.SelectElements("det") {
		prod := det.SelectElement("prod")
		if prod == nil {
			continue
		}
		line := Line{
			ProductCode: childText(prod, "cProd"),
			ProductName: childText(prod, "xProd"),
		}
		if line.ProductName == "" {
			line.ProductName = "Produto XML"
		}
		qty, err := p.parseDecimal(childText(prod, "qCom"))
		if err != nil {
			return nil, err
		}
		cost, err := p.parseDecimal(childText(prod, "vUnCom"))
		if err != nil {
			return nil, err
		}
		line.Quantity = qty.IntPart()
		line.UnitCost = cost
		out.Lines = append(out.Lines, line)
	}
	return out, nil
}

// parseDecimal lee un numérico con punto decimal invariante (nunca depende
// del locale). Vacío o ilegible: cero en modo leniente, error en estricto.
func (p *Parser) parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		if p.strict {
			return decimal.Zero, domain.ErrMalformedDocument
		}
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		if p.strict {
			return decimal.Zero, domain.ErrMalformedDocument
		}
		return decimal.Zero, nil
	}
	return d, nil
}

// childText texto del hijo directo con ese tag, ignorando prefijo de namespace.
func childText(parent *etree.Element, tag string) string {
	if child := parent.SelectElement(tag); child != nil {
		return child.Text()
	}
	return ""
}
