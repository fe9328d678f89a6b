package usecase

// User-facing error messages.
const (
	msgRequiredFields = "Todos os campos são obrigatórios"
	msgBlankFields    = "Os campos informados não podem estar vazios"
	msgLoginRequired  = "Email e senha são obrigatórios"
	msgEmailTaken     = "Email já cadastrado"
	msgUserNotFound   = "Usuário não encontrado"
	msgWrongPassword  = "Senha incorreta"
	msgVagaNotFound   = "Vaga não encontrada"
	msgAlreadySaved   = "Vaga já salva"
	msgNotSaved       = "Vaga não está salva"
	msgPasswordLong   = "Senha muito longa"
)
