package invoices_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/invoices"
	"github.com/jhoicas/estoque-api/internal/application/stock"
	"github.com/jhoicas/estoque-api/internal/application/stock/stocktest"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/nfe"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(store *stocktest.Store, autoProvision bool) *invoices.InvoiceUseCase {
	repos := store.Repos()
	return invoices.NewInvoiceUseCase(
		&stocktest.TxRunner{Store: store},
		stock.NewLedger(),
		repos.Suppliers,
		repos.Invoices,
		repos.Products,
		nfe.NewParser(false),
		invoices.Config{
			AutoProvision: autoProvision,
			MarkupFactor:  decimal.NewFromFloat(1.5),
		},
	)
}

func seedCatalog(store *stocktest.Store) {
	store.Suppliers["f1"] = &entity.Supplier{ID: "f1", Name: "Papelaria XYZ", TaxID: "12345678000190"}
	store.Products["a"] = &entity.Product{
		ID: "a", Name: "Produto A", Quantity: 1,
		Cost: decimal.NewFromFloat(0.80), Price: decimal.NewFromFloat(2.00), Active: true,
	}
	store.Products["b"] = &entity.Product{
		ID: "b", Name: "Produto B", Quantity: 5,
		Cost: decimal.NewFromFloat(2.50), Price: decimal.NewFromFloat(6.00), Active: true,
	}
}

// Escenario C: dos líneas (A qty 4 a 1.00; B qty 2 a 3.00) suman existencias,
// sobreescriben costos y dejan total 10.00 en la cabecera.
func TestCreate_SumaStockYCalculaTotal(t *testing.T) {
	store := stocktest.NewStore()
	seedCatalog(store)
	uc := newUseCase(store, false)

	resp, err := uc.Create(context.Background(), "u1", dto.CreateInvoiceRequest{
		SupplierID: "f1",
		Number:     "NF-001",
		IssueDate:  "2025-03-10",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "a", Quantity: 4, UnitCost: decimal.NewFromFloat(1.00)},
			{ProductID: "b", Quantity: 2, UnitCost: decimal.NewFromFloat(3.00)},
		},
	})
	require.NoError(t, err)

	assert.EqualValues(t, 5, store.Products["a"].Quantity)
	assert.True(t, store.Products["a"].Cost.Equal(decimal.NewFromFloat(1.00)))
	assert.EqualValues(t, 7, store.Products["b"].Quantity)
	assert.True(t, store.Products["b"].Cost.Equal(decimal.NewFromFloat(3.00)))
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(10.00)), "total = 4×1.00 + 2×3.00")
	assert.True(t, store.Invoices[resp.ID].Total.Equal(decimal.NewFromFloat(10.00)))
	assert.Len(t, store.InvoiceLn, 2)
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	store := stocktest.NewStore()
	seedCatalog(store)
	uc := newUseCase(store, false)

	_, err := uc.Create(context.Background(), "u1", dto.CreateInvoiceRequest{
		SupplierID: "no-existe",
		Number:     "NF-002",
		Items:      []dto.InvoiceItemRequest{{ProductID: "a", Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
	})

	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
	assert.Empty(t, store.Invoices)
}

// Un producto no catalogado en cualquier línea aborta la nota completa: las
// recepciones previas se revierten y no queda cabecera.
func TestCreate_ProductoFaltanteAbortaNotaCompleta(t *testing.T) {
	store := stocktest.NewStore()
	seedCatalog(store)
	uc := newUseCase(store, false)

	_, err := uc.Create(context.Background(), "u1", dto.CreateInvoiceRequest{
		SupplierID: "f1",
		Number:     "NF-003",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "a", Quantity: 4, UnitCost: decimal.NewFromFloat(1.00)},
			{ProductID: "fantasma", Quantity: 2, UnitCost: decimal.NewFromFloat(3.00)},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	var lineErr *domain.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 2, lineErr.Line)
	assert.EqualValues(t, 1, store.Products["a"].Quantity, "la recepción de la línea 1 se revierte")
	assert.True(t, store.Products["a"].Cost.Equal(decimal.NewFromFloat(0.80)), "el costo tampoco cambia")
	assert.Empty(t, store.Invoices)
	assert.Empty(t, store.InvoiceLn)
}

func TestCreate_ValidacionDeForma(t *testing.T) {
	store := stocktest.NewStore()
	seedCatalog(store)
	uc := newUseCase(store, false)

	cases := []struct {
		name string
		in   dto.CreateInvoiceRequest
	}{
		{"sin líneas", dto.CreateInvoiceRequest{SupplierID: "f1", Number: "NF-1"}},
		{"cantidad cero", dto.CreateInvoiceRequest{SupplierID: "f1", Number: "NF-1",
			Items: []dto.InvoiceItemRequest{{ProductID: "a", Quantity: 0, UnitCost: decimal.NewFromInt(1)}}}},
		{"costo negativo", dto.CreateInvoiceRequest{SupplierID: "f1", Number: "NF-1",
			Items: []dto.InvoiceItemRequest{{ProductID: "a", Quantity: 1, UnitCost: decimal.NewFromInt(-1)}}}},
		{"sin número", dto.CreateInvoiceRequest{SupplierID: "f1",
			Items: []dto.InvoiceItemRequest{{ProductID: "a", Quantity: 1, UnitCost: decimal.NewFromInt(1)}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), "u1", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

const sampleNFe = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe">
  <NFe>
    <infNFe Id="NFe3525">
      <ide>
        <nNF>12345</nNF>
        <dhEmi>2025-03-10T09:30:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>12345678000190</CNPJ>
        <xNome>Papelaria XYZ</xNome>
      </emit>
      <det nItem="1">
        <prod>
          <cProd>A-01</cProd>
          <xProd>Produto A</xProd>
          <qCom>4.0000</qCom>
          <vUnCom>1.00</vUnCom>
        </prod>
      </det>
      <det nItem="2">
        <prod>
          <cProd>N-77</cProd>
          <xProd>Produto Novo</xProd>
          <qCom>3.0000</qCom>
          <vUnCom>2.00</vUnCom>
        </prod>
      </det>
    </infNFe>
  </NFe>
</nfeProc>`

// Escenario E: el XML referencia un producto desconocido; con AutoProvision
// se crea con costo 2.00 y precio 3.00 (markup 1.5×) y recibe sus 3 unidades.
func TestImportXML_AutoProvisionaProductoNuevo(t *testing.T) {
	store := stocktest.NewStore()
	seedCatalog(store)
	uc := newUseCase(store, true)

	resp, err := uc.ImportXML(context.Background(), "u1", []byte(sampleNFe))
	require.NoError(t, err)

	assert.Equal(t, "12345", resp.Number)
	assert.Equal(t, "Papelaria XYZ", resp.SupplierName)
	assert.Equal(t, 2, resp.TotalItems)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(10.00)), "4×1.00 + 3×2.00")

	// Producto existente: recibe 4 y cuesta 1.00
	assert.EqualValues(t, 5, store.Products["a"].Quantity)
	assert.True(t, store.Products["a"].Cost.Equal(decimal.NewFromFloat(1.00)))

	// Producto nuevo auto-creado
	repos := store.Repos()
	nuevo, err := repos.Products.GetByName("Produto Novo")
	require.NoError(t, err)
	require.NotNil(t, nuevo)
	assert.EqualValues(t, 3, nuevo.Quantity)
	assert.True(t, nuevo.Cost.Equal(decimal.NewFromFloat(2.00)))
	assert.True(t, nuevo.Price.Equal(decimal.NewFromFloat(3.00)), "precio = costo × 1.5")
	assert.Equal(t, "Importado", nuevo.Category)
}

func TestImportXML_ProveedorAutoCreadoPorCNPJ(t *testing.T) {
	store := stocktest.NewStore()
	store.Products["a"] = &entity.Product{ID: "a", Name: "Produto A", Active: true,
		Cost: decimal.Zero, Price: decimal.Zero}
	uc := newUseCase(store, true)

	_, err := uc.ImportXML(context.Background(), "u1", []byte(sampleNFe))
	require.NoError(t, err)

	repos := store.Repos()
	supplier, err := repos.Suppliers.GetByTaxID("12345678000190")
	require.NoError(t, err)
	require.NotNil(t, supplier)
	assert.Equal(t, "Papelaria XYZ", supplier.Name)
	assert.Equal(t, "xml@import.com", supplier.Email, "contacto placeholder del importador")
}

// Con AutoProvision desactivado, proveedor o producto faltantes abortan la
// importación sin persistir nada (ni el proveedor del XML).
func TestImportXML_SinAutoProvisionAborta(t *testing.T) {
	store := stocktest.NewStore()
	seedCatalog(store)
	uc := newUseCase(store, false)

	_, err := uc.ImportXML(context.Background(), "u1", []byte(sampleNFe))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.EqualValues(t, 1, store.Products["a"].Quantity, "ninguna recepción sobrevive")
	assert.Empty(t, store.Invoices)
	assert.Len(t, store.Products, 2, "no se crean productos")
}

func TestImportXML_XMLSinInfNFe(t *testing.T) {
	store := stocktest.NewStore()
	uc := newUseCase(store, true)

	_, err := uc.ImportXML(context.Background(), "u1", []byte(`<?xml version="1.0"?><otro/>`))

	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Empty(t, store.Invoices)
	assert.Empty(t, store.Suppliers)
}

const brokenQtyNFe = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe">
  <NFe>
    <infNFe Id="NFe9911">
      <ide>
        <nNF>9911</nNF>
        <dhEmi>2025-04-02T11:00:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>12345678000190</CNPJ>
        <xNome>Papelaria XYZ</xNome>
      </emit>
      <det nItem="1">
        <prod>
          <cProd>A-01</cProd>
          <xProd>Produto A</xProd>
          <qCom>abc</qCom>
          <vUnCom>1.00</vUnCom>
        </prod>
      </det>
      <det nItem="2">
        <prod>
          <cProd>B-02</cProd>
          <xProd>Produto B</xProd>
          <qCom>2.0000</qCom>
          <vUnCom>3.00</vUnCom>
        </prod>
      </det>
    </infNFe>
  </NFe>
</nfeProc>`

// El parser laxo mapea un qCom ilegible a cero; la importación conserva esa
// línea con cantidad cero (y un movimiento nulo) en vez de abortar la nota.
func TestImportXML_CantidadIlegibleNoAbortaNota(t *testing.T) {
	store := stocktest.NewStore()
	seedCatalog(store)
	uc := newUseCase(store, true)

	resp, err := uc.ImportXML(context.Background(), "u1", []byte(brokenQtyNFe))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalItems)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(6.00)), "0×1.00 + 2×3.00")

	// Línea ilegible: no mueve stock pero sobreescribe el costo y queda anotada.
	assert.EqualValues(t, 1, store.Products["a"].Quantity)
	assert.True(t, store.Products["a"].Cost.Equal(decimal.NewFromFloat(1.00)))

	// La línea válida recibe con normalidad.
	assert.EqualValues(t, 7, store.Products["b"].Quantity)

	require.Len(t, store.InvoiceLn, 2)
	assert.Equal(t, 1, store.InvoiceLn[0].LineNumber)
	assert.EqualValues(t, 0, store.InvoiceLn[0].Quantity)
	assert.Equal(t, 2, store.InvoiceLn[1].LineNumber)
	assert.EqualValues(t, 2, store.InvoiceLn[1].Quantity)

	var nulo *entity.StockMovement
	for _, m := range store.Movements {
		if m.ProductID == "a" {
			nulo = m
		}
	}
	require.NotNil(t, nulo, "el movimiento de auditoría se registra aun con cantidad cero")
	assert.EqualValues(t, 0, nulo.Quantity)
}
