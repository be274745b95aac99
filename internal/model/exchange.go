package model

// UserProfile 用户资料草稿，字段为空时不落库
type UserProfile struct {
	Nombre    string `json:"nombre,omitempty"`
	Apellidos string `json:"apellidos,omitempty"`
	Empresa   string `json:"empresa,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ExchangeRecord 一问一答的审计记录，只写一次
type ExchangeRecord struct {
	SessionID string  `bson:"id_sesion" json:"idSesion"`
	QueryNum  int     `bson:"query_num" json:"queryNum"`
	Question  string  `bson:"pregunta" json:"pregunta"`
	Answer    string  `bson:"respuesta" json:"respuesta"`
	Timestamp string  `bson:"hora_fecha" json:"horaFecha"`
	Cost      float64 `bson:"coste" json:"coste"`
	Tokens    int     `bson:"tokens" json:"tokens"`
	Nombre    string  `bson:"nombre,omitempty" json:"nombre,omitempty"`
	Apellidos string  `bson:"apellidos,omitempty" json:"apellidos,omitempty"`
	Empresa   string  `bson:"empresa,omitempty" json:"empresa,omitempty"`
	Email     string  `bson:"email,omitempty" json:"email,omitempty"`
}

// WithProfile 附加用户资料
func (r *ExchangeRecord) WithProfile(p UserProfile) *ExchangeRecord {
	r.Nombre = p.Nombre
	r.Apellidos = p.Apellidos
	r.Empresa = p.Empresa
	r.Email = p.Email
	return r
}
