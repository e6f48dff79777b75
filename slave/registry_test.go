package slave

import "testing"

func TestRegistryEnforcesAdmissionLimit(t *testing.T) {
	r := NewRegistry(2)
	s1, s2, s3 := &Server{}, &Server{}, &Server{}

	if !r.Admit(s1) {
		t.Fatal("Admit(s1) = false, want true")
	}
	if !r.Admit(s2) {
		t.Fatal("Admit(s2) = false, want true")
	}
	if r.Admit(s3) {
		t.Fatal("Admit(s3) = true, want false (over limit)")
	}

	r.Release(s1)
	if !r.Admit(s3) {
		t.Fatal("Admit(s3) after release = false, want true")
	}
}
