package scf

// CheckInvariants exposes checkInvariants to the scf_test package.
var CheckInvariants = checkInvariants
