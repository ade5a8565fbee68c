// Package catalog holds the static reference data: the INSS benefit
// catalog (each benefit with its standard document checklist) and the
// rural-activity proof catalog. Read-only; the rest of the app only
// ever looks entries up.
package catalog

// Benefit is one benefit type and the documents usually required for it.
type Benefit struct {
	ID        string
	Name      string
	Documents []string
}

// RuralProof is one accepted material proof of rural activity.
type RuralProof struct {
	ID   string
	Name string
}

var commonDocuments = []string{
	"Documento de identificação com foto (RG ou CNH)",
	"CPF",
	"Comprovante de residência atualizado",
	"Carteira de trabalho (todas as páginas com anotações)",
	"Carnês de contribuição (se houver)",
}

var benefits = []Benefit{
	{
		ID:   "aposentadoria-idade-urbana",
		Name: "Aposentadoria por Idade Urbana",
		Documents: append(append([]string{}, commonDocuments...),
			"Extrato CNIS atualizado",
			"Comprovantes de vínculos não registrados no CNIS",
			"PIS/PASEP ou NIT",
		),
	},
	{
		ID:   "aposentadoria-idade-rural",
		Name: "Aposentadoria por Idade Rural",
		Documents: append(append([]string{}, commonDocuments...),
			"Autodeclaração de segurado especial",
			"Documentos do imóvel rural (ITR, CCIR ou contrato)",
			"Provas materiais de atividade rural",
		),
	},
	{
		ID:   "aposentadoria-tempo-contribuicao",
		Name: "Aposentadoria por Tempo de Contribuição",
		Documents: append(append([]string{}, commonDocuments...),
			"Extrato CNIS atualizado",
			"Certidão de tempo de contribuição (se servidor público)",
			"PPP - Perfil Profissiográfico Previdenciário (se atividade especial)",
			"LTCAT (se atividade especial)",
		),
	},
	{
		ID:   "auxilio-incapacidade",
		Name: "Auxílio por Incapacidade Temporária (Auxílio-Doença)",
		Documents: append(append([]string{}, commonDocuments...),
			"Atestados e laudos médicos recentes",
			"Exames complementares",
			"Receituários de medicamentos de uso contínuo",
			"Declaração do último dia trabalhado (se empregado)",
		),
	},
	{
		ID:   "bpc-loas",
		Name: "BPC/LOAS - Benefício de Prestação Continuada",
		Documents: append(append([]string{}, commonDocuments...),
			"CPF de todos os membros do grupo familiar",
			"Comprovantes de renda de todos os membros da família",
			"Inscrição no CadÚnico atualizada",
			"Laudos médicos (no caso de pessoa com deficiência)",
		),
	},
	{
		ID:   "pensao-morte",
		Name: "Pensão por Morte",
		Documents: append(append([]string{}, commonDocuments...),
			"Certidão de óbito",
			"Certidão de casamento ou prova de união estável",
			"Certidão de nascimento dos filhos menores",
			"Documentos do instituidor (RG, CPF, CNIS)",
		),
	},
	{
		ID:   "salario-maternidade",
		Name: "Salário-Maternidade",
		Documents: append(append([]string{}, commonDocuments...),
			"Certidão de nascimento da criança ou atestado médico com DUM",
			"Termo de guarda ou adoção (se for o caso)",
		),
	},
	{
		ID:   "auxilio-reclusao",
		Name: "Auxílio-Reclusão",
		Documents: append(append([]string{}, commonDocuments...),
			"Certidão de recolhimento à prisão",
			"Documentos dos dependentes",
			"Comprovante de baixa renda do segurado",
		),
	},
}

var ruralProofs = []RuralProof{
	{ID: "contrato-arrendamento", Name: "Contrato de arrendamento, parceria ou comodato rural"},
	{ID: "notas-fiscais-produtor", Name: "Notas fiscais de venda de produção rural (bloco de produtor)"},
	{ID: "itr", Name: "Declaração de ITR - Imposto Territorial Rural"},
	{ID: "ccir", Name: "CCIR - Certificado de Cadastro de Imóvel Rural"},
	{ID: "declaracao-sindicato", Name: "Declaração de sindicato de trabalhadores rurais homologada"},
	{ID: "certidao-casamento-lavrador", Name: "Certidão de casamento constando profissão de lavrador(a)"},
	{ID: "certidao-nascimento-filhos", Name: "Certidão de nascimento dos filhos constando profissão rural"},
	{ID: "historico-escolar-rural", Name: "Histórico escolar dos filhos em escola da zona rural"},
	{ID: "ficha-atendimento-medico", Name: "Fichas de atendimento médico constando profissão e endereço rural"},
	{ID: "contrato-financiamento-rural", Name: "Contratos de financiamento rural (PRONAF e similares)"},
	{ID: "cadastro-incra", Name: "Cadastro do INCRA"},
	{ID: "titulo-eleitor-rural", Name: "Título de eleitor constando profissão de trabalhador rural"},
}

// Benefits returns the full benefit catalog in display order.
func Benefits() []Benefit {
	out := make([]Benefit, len(benefits))
	copy(out, benefits)
	return out
}

// Find returns the benefit with the given id.
func Find(id string) (Benefit, bool) {
	for _, b := range benefits {
		if b.ID == id {
			return b, true
		}
	}
	return Benefit{}, false
}

// Documents returns the ordered document template for a benefit id, or
// false when the id is unknown.
func Documents(id string) ([]string, bool) {
	b, ok := Find(id)
	if !ok {
		return nil, false
	}
	docs := make([]string, len(b.Documents))
	copy(docs, b.Documents)
	return docs, true
}

// RuralProofs returns the full rural-proof catalog in display order.
func RuralProofs() []RuralProof {
	out := make([]RuralProof, len(ruralProofs))
	copy(out, ruralProofs)
	return out
}

// ProofTexts resolves a set of selected proof ids to their display
// texts, in catalog order regardless of selection order. Unknown ids
// are skipped.
func ProofTexts(ids map[string]bool) []string {
	var out []string
	for _, p := range ruralProofs {
		if ids[p.ID] {
			out = append(out, p.Name)
		}
	}
	return out
}
