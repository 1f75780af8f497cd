package valueobjects

import "testing"

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "email válido", input: "joao@hospital.com.br", want: "joao@hospital.com.br"},
		{name: "normaliza maiúsculas e espaços", input: "  Joao@Hospital.COM ", want: "joao@hospital.com"},
		{name: "sem arroba", input: "joao.hospital.com", wantErr: true},
		{name: "sem domínio de topo", input: "joao@hospital", wantErr: true},
		{name: "vazio", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewEmail(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("esperava erro para %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			if email.String() != tt.want {
				t.Errorf("esperava %q, obteve %q", tt.want, email.String())
			}
		})
	}
}

func TestEmail_Masked(t *testing.T) {
	long, _ := NewEmail("usuario.longo@gmail.com")
	if got := long.Masked(); got != "usu...@gmail.com" {
		t.Errorf("esperava 'usu...@gmail.com', obteve %q", got)
	}

	short, _ := NewEmail("ana@gmail.com")
	if got := short.Masked(); got != "a...@gmail.com" {
		t.Errorf("esperava 'a...@gmail.com', obteve %q", got)
	}
}
