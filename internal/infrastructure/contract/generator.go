package contract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ignatzorin/conectar-backend/internal/domain/repository"
	"github.com/ignatzorin/conectar-backend/internal/logger"
)

const (
	DefaultCity = "Dois Vizinhos"

	lineHeight = 8.0
	fontFamily = "Arial"
)

var months = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Generator формирует PDF соглашения о предоставлении услуг и сохраняет его как вложение.
type Generator struct {
	storage repository.AttachmentStorage
	city    string
}

func NewGenerator(storage repository.AttachmentStorage, city string) *Generator {
	if strings.TrimSpace(city) == "" {
		city = DefaultCity
	}
	return &Generator{storage: storage, city: city}
}

// Generate возвращает имя сохранённого файла.
func (g *Generator) Generate(ctx context.Context, data repository.ContractData) (string, error) {
	if data.Slot == nil || data.Project == nil || data.Idealizer == nil || data.Collaborator == nil {
		return "", fmt.Errorf("contract: неполные данные соглашения")
	}

	content, err := g.Render(data)
	if err != nil {
		return "", err
	}

	ref, err := g.storage.Save(ctx, content)
	if err != nil {
		return "", fmt.Errorf("contract: не удалось сохранить документ: %w", err)
	}

	logger.WithSlot(data.Slot.ID, data.Project.ID).WithField("attachment", ref).Info("contract: документ сформирован")
	return ref, nil
}

// Render рисует документ в память.
func (g *Generator) Render(data repository.ContractData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.Ln(20)
	pdf.CellFormat(175, 12, tr("ACORDO DE PRESTAÇÃO DE SERVIÇOS"), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(175, 12, tr("IDENTIFICAÇÃO DAS PARTES CONTRATANTES"), "", 1, "L", false, 0, "")

	party := func(label, name string) {
		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(pdf.GetStringWidth(label), lineHeight, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 12)
		pdf.CellFormat(0, lineHeight, tr(name), "", 1, "L", false, 0, "")
	}
	party("CONTRATANTE: ", data.Idealizer.Name)
	party("CONTRATADO: ", data.Collaborator.Name)

	pdf.Ln(5)
	pdf.MultiCell(0, lineHeight, tr("As partes acima identificadas têm, entre si, justo e acertado o presente Acordo de "+
		"Prestação de Serviços, que se regerá pelo objeto do acordo pelas condições de remuneração, forma e termo de "+
		"pagamento descritas no presente."), "", "J", false)

	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(175, 15, tr("DO OBJETO DE ACORDO"), "", 1, "L", false, 0, "")

	pdf.SetFont(fontFamily, "", 12)
	pdf.MultiCell(0, lineHeight, tr(objectClause(data)), "", "J", false)
	if data.Slot.Paid {
		pdf.MultiCell(0, lineHeight, tr("Esta prestação de serviços será remunerada com valores e pagamentos a serem "+
			"negociados entre ambas as partes."), "", "J", false)
	} else {
		pdf.MultiCell(0, lineHeight, tr("Esta prestação de serviços não será remunerada conforme anunciado na "+
			"plataforma Conectar."), "", "J", false)
	}

	pdf.Ln(10)
	pdf.MultiCell(0, lineHeight, tr("A execução da prestação de serviço aqui acordada será de responsabilidade das "+
		"partes envolvidas, eximindo da plataforma Conectar de qualquer obrigação com o contratante ou contratado."), "", "J", false)

	pdf.Ln(7)
	pdf.CellFormat(0, lineHeight, tr(g.dateLine(data.SignedAt)), "", 1, "L", false, 0, "")

	pdf.Ln(20)
	pdf.CellFormat(175, lineHeight, "___________________            ___________________", "", 1, "C", false, 0, "")
	pdf.CellFormat(175, lineHeight, "Contratante                            Contratado", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("contract: ошибка формирования PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func objectClause(data repository.ContractData) string {
	clause := fmt.Sprintf("É objeto do presente acordo a prestação do serviço no projeto %s como %s na vaga de %s",
		data.Project.Name, strings.ToLower(string(data.Slot.Role)), data.Slot.Title)
	if data.AgreementType != nil {
		clause += " por meio de um contrato como " + data.AgreementType.Description
	}
	return clause + "."
}

func (g *Generator) dateLine(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return fmt.Sprintf("%s, %d de %s de %d", g.city, t.Day(), months[t.Month()-1], t.Year())
}
