package nfe_test

import (
	"testing"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/infrastructure/nfe"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docCompleto = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35250412345678000190550010000123451000123456" versao="4.00">
      <ide>
        <nNF>12345</nNF>
        <dhEmi>2025-04-02T14:05:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>12345678000190</CNPJ>
        <xNome>Distribuidora Alfa Ltda</xNome>
      </emit>
      <det nItem="1">
        <prod>
          <cProd>C-100</cProd>
          <xProd>Caderno 100 folhas</xProd>
          <qCom>12.0000</qCom>
          <vUnCom>4.5000</vUnCom>
        </prod>
      </det>
      <det nItem="2">
        <prod>
          <cProd>L-2</cProd>
          <xProd>Lápis HB</xProd>
          <qCom>200.0000</qCom>
          <vUnCom>0.35</vUnCom>
        </prod>
      </det>
    </infNFe>
  </NFe>
</nfeProc>`

func TestParse_DocumentoCompleto(t *testing.T) {
	parser := nfe.NewParser(false)

	doc, err := parser.Parse([]byte(docCompleto), time.Now())
	require.NoError(t, err)

	assert.Equal(t, "12345", doc.Number)
	assert.Equal(t, "12345678000190", doc.SupplierTaxID)
	assert.Equal(t, "Distribuidora Alfa Ltda", doc.SupplierName)
	assert.Equal(t, 2025, doc.IssueDate.Year())
	assert.Equal(t, time.April, doc.IssueDate.Month())

	require.Len(t, doc.Lines, 2)
	assert.Equal(t, "C-100", doc.Lines[0].ProductCode)
	assert.Equal(t, "Caderno 100 folhas", doc.Lines[0].ProductName)
	assert.EqualValues(t, 12, doc.Lines[0].Quantity, "qCom se trunca a entero")
	assert.True(t, doc.Lines[0].UnitCost.Equal(decimal.NewFromFloat(4.50)))
	assert.EqualValues(t, 200, doc.Lines[1].Quantity)
	assert.True(t, doc.Lines[1].UnitCost.Equal(decimal.NewFromFloat(0.35)))
}

func TestParse_SinInfNFe(t *testing.T) {
	parser := nfe.NewParser(false)

	_, err := parser.Parse([]byte(`<?xml version="1.0"?><nfeProc xmlns="http://www.portalfiscal.inf.br/nfe"><NFe/></nfeProc>`), time.Now())

	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestParse_XMLIlegible(t *testing.T) {
	parser := nfe.NewParser(false)

	_, err := parser.Parse([]byte(`esto no es XML <<<`), time.Now())

	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

const docNumerosRotos = `<?xml version="1.0"?>
<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe>
    <ide><nNF>9</nNF></ide>
    <emit><CNPJ>111</CNPJ><xNome>Prov</xNome></emit>
    <det><prod><cProd>X</cProd><xProd>Cosa</xProd><qCom>abc</qCom><vUnCom>1,50</vUnCom></prod></det>
  </infNFe>
</NFe>`

// Modo leniente: numéricos ilegibles quedan en cero (política heredada del
// importador original). La coma decimal también cuenta como ilegible: el
// formato es invariante con punto, nunca dependiente del locale.
func TestParse_NumericosIlegibles_Leniente(t *testing.T) {
	parser := nfe.NewParser(false)

	doc, err := parser.Parse([]byte(docNumerosRotos), time.Now())
	require.NoError(t, err)

	require.Len(t, doc.Lines, 1)
	assert.EqualValues(t, 0, doc.Lines[0].Quantity)
	assert.True(t, doc.Lines[0].UnitCost.IsZero())
}

func TestParse_NumericosIlegibles_Estricto(t *testing.T) {
	parser := nfe.NewParser(true)

	_, err := parser.Parse([]byte(docNumerosRotos), time.Now())

	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

// Sin dhEmi o con fecha ilegible se usa la hora provista como fallback.
func TestParse_FechaIlegibleUsaFallback(t *testing.T) {
	parser := nfe.NewParser(false)
	fallback := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	doc, err := parser.Parse([]byte(`<?xml version="1.0"?>
<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe>
    <ide><nNF>7</nNF><dhEmi>ayer</dhEmi></ide>
    <emit><CNPJ>222</CNPJ><xNome>Prov</xNome></emit>
  </infNFe>
</NFe>`), fallback)

	require.NoError(t, err)
	assert.True(t, doc.IssueDate.Equal(fallback))
	assert.Empty(t, doc.Lines)
}

func TestParse_ValoresPorDefecto(t *testing.T) {
	parser := nfe.NewParser(false)

	doc, err := parser.Parse([]byte(`<?xml version="1.0"?>
<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe><det><prod/></det></infNFe></NFe>`), time.Now())

	require.NoError(t, err)
	assert.Equal(t, "S/N", doc.Number, "sin nNF el número queda S/N")
	assert.Equal(t, "Fornecedor Desconhecido", doc.SupplierName)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "Produto XML", doc.Lines[0].ProductName)
}
