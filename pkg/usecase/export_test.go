package usecase

var NewLeadValidator = newLeadValidator
