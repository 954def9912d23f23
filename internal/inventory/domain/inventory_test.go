package domain

import "testing"

func TestOperationValid(t *testing.T) {
	tests := []struct {
		op    Operation
		valid bool
	}{
		{OperationAdd, true},
		{OperationSell, true},
		{Operation("transfer"), false},
		{Operation(""), false},
		{Operation("ADD"), false},
	}

	for _, tt := range tests {
		if got := tt.op.Valid(); got != tt.valid {
			t.Errorf("Operation(%q).Valid() = %v, want %v", tt.op, got, tt.valid)
		}
	}
}

func TestResolveDelta(t *testing.T) {
	tests := []struct {
		name      string
		op        Operation
		magnitude int
		want      int
		wantErr   error
	}{
		{"add positive", OperationAdd, 5, 5, nil},
		{"sell positive", OperationSell, 5, -5, nil},
		{"add zero", OperationAdd, 0, 0, nil},
		{"sell zero", OperationSell, 0, 0, nil},
		{"add negative passes through", OperationAdd, -3, -3, nil},
		{"sell negative passes through", OperationSell, -3, 3, nil},
		{"unknown operation", Operation("transfer"), 5, 0, ErrInvalidOperation},
		{"empty operation", Operation(""), 5, 0, ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDelta(tt.op, tt.magnitude)
			if err != tt.wantErr {
				t.Fatalf("ResolveDelta(%q, %d) error = %v, want %v", tt.op, tt.magnitude, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveDelta(%q, %d) = %d, want %d", tt.op, tt.magnitude, got, tt.want)
			}
		})
	}
}
