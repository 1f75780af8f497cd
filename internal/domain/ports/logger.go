package ports

// Logger é o log estruturado de serviços, handlers e workers.
// args seguem a convenção do slog: pares chave/valor.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	// With devolve um logger que repete os atributos em toda mensagem
	With(args ...any) Logger
}
